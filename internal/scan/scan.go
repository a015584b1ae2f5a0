// Package scan decides whether a module applies to a directory from
// declarative criteria evaluated against the cached directory listing.
package scan

import "github.com/hbjs97/promptline/internal/cache"

// Lister는 디렉토리의 캐시된 목록을 반환한다.
type Lister interface {
	Entries(dir string) cache.Listing
}

// Criteria는 모듈 활성화 신호 묶음이다. 파일 이름, 확장자, 폴더 이름 중 하나라도 맞으면 충족된다.
type Criteria struct {
	Files      []string
	Extensions []string
	Folders    []string
}

// IsZero는 c에 신호가 하나도 없는지 확인한다.
func (c Criteria) IsZero() bool {
	return len(c.Files) == 0 && len(c.Extensions) == 0 && len(c.Folders) == 0
}

// SatisfiedBy는 l이 c를 충족하는지 확인한다. 파일 이름, 확장자, 폴더 순으로 검사한다.
func (c Criteria) SatisfiedBy(l cache.Listing) bool {
	for _, name := range c.Files {
		if l.HasFile(name) {
			return true
		}
	}
	for _, ext := range c.Extensions {
		if l.HasExtension(ext) {
			return true
		}
	}
	for _, name := range c.Folders {
		if l.HasFolder(name) {
			return true
		}
	}
	return false
}

// IsActive는 dir이 include 중 하나를 충족하고 exclude는 하나도 충족하지 않는지 확인한다.
// exclude는 include가 맞은 뒤에만 검사한다. 읽을 수 없는 디렉토리는 아무것도 충족하지 않는다.
func IsActive(l Lister, dir string, include, exclude []Criteria) bool {
	listing := l.Entries(dir)

	matched := false
	for _, c := range include {
		if c.SatisfiedBy(listing) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, c := range exclude {
		if c.SatisfiedBy(listing) {
			return false
		}
	}
	return true
}
