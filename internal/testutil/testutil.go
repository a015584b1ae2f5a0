// Package testutil provides common test helpers for the promptline project.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
)

// TempTree creates a temporary directory populated by MkTree and returns
// its path. It is removed when the test finishes.
func TempTree(t *testing.T, paths ...string) string {
	t.Helper()

	root := t.TempDir()
	MkTree(t, root, paths...)
	return root
}

// MkTree creates paths under root. A path ending in "/" is a directory,
// anything else an empty file; parents are created as needed.
func MkTree(t *testing.T, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatalf("MkTree: mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("MkTree: mkdir parent of %s: %v", p, err)
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			t.Fatalf("MkTree: write %s: %v", p, err)
		}
	}
}

// WriteFile writes content to root/name, creating parent directories.
func WriteFile(t *testing.T, root, name, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("WriteFile: mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: write failed: %v", err)
	}
	return path
}

// InitGitRepo turns dir into a git repository (non-bare) and returns it.
func InitGitRepo(t *testing.T, dir string) *git.Repository {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("InitGitRepo: mkdir: %v", err)
	}
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("InitGitRepo: init %s: %v", dir, err)
	}
	return repo
}

// Symlink creates link pointing at target, skipping the test where the
// platform refuses.
func Symlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Symlink: mkdir: %v", err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Symlink: symlinks unavailable: %v", err)
	}
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	return TempConfigFileNamed(t, "config.toml", content)
}

// TempConfigFileNamed is TempConfigFile with an explicit file name, used
// to pick the YAML decoder.
func TempConfigFileNamed(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}
