// Package repo locates the repository enclosing a directory by walking the
// path as the user typed it, never the symlink-resolved one.
package repo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/hbjs97/promptline/internal/cache"
)

// Marker는 리포지토리 루트를 표시하는 엔트리 이름이다.
// 일반 리포에서는 디렉토리, worktree와 submodule에서는 파일이다.
const Marker = ".git"

// Lister는 디렉토리의 캐시된 목록을 반환한다.
type Lister interface {
	Entries(dir string) cache.Listing
}

// Info는 리포지토리 탐색 결과다.
type Info struct {
	Found bool
	// Root는 탐색한 경로에 나타난 그대로의 리포 루트다.
	Root string
}

// Name은 루트의 마지막 경로 요소를 반환한다. 찾지 못했으면 ""다.
func (i Info) Name() string {
	if !i.Found {
		return ""
	}
	return filepath.Base(i.Root)
}

// Contains는 path가 루트이거나 문자열상 루트 아래에 있는지 확인한다.
func (i Info) Contains(path string) bool {
	if !i.Found {
		return false
	}
	path = filepath.Clean(path)
	if path == i.Root {
		return true
	}
	prefix := i.Root
	if prefix != string(filepath.Separator) {
		prefix += string(filepath.Separator)
	}
	return len(path) > len(prefix) && path[:len(prefix)] == prefix
}

// Locate는 start에서 한 단계씩 위로 올라가며 Marker가 있는 첫 디렉토리를 찾는다.
func Locate(l Lister, start string) Info {
	if start == "" {
		return Info{}
	}
	dir := filepath.Clean(start)
	for {
		if l.Entries(dir).Has(Marker) {
			return Info{Found: true, Root: dir}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Info{}
		}
		dir = parent
	}
}

// Branch는 root 리포지토리의 현재 브랜치를 반환한다.
// detached HEAD면 축약 커밋 해시를, 커밋이 없는 브랜치면 HEAD가 가리키는 브랜치 이름을 반환한다.
func Branch(root string) (string, error) {
	r, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return "", fmt.Errorf("repo.Branch: %w", err)
	}

	head, err := r.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		sym, symErr := r.Reference(plumbing.HEAD, false)
		if symErr != nil {
			return "", fmt.Errorf("repo.Branch: %w", symErr)
		}
		return sym.Target().Short(), nil
	}
	if err != nil {
		return "", fmt.Errorf("repo.Branch: %w", err)
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String()[:7], nil
}
