package cache

import (
	"path/filepath"
	"strings"
)

// Entry is one directory entry as seen by the modules.
type Entry struct {
	Name  string
	IsDir bool
	Ext   string
}

// Listing is the immutable content of one directory.
type Listing struct {
	entries    []Entry
	files      map[string]struct{}
	folders    map[string]struct{}
	extensions map[string]struct{}
	err        error
}

func newListing(entries []Entry, err error) Listing {
	l := Listing{
		entries:    entries,
		files:      make(map[string]struct{}),
		folders:    make(map[string]struct{}),
		extensions: make(map[string]struct{}),
		err:        err,
	}
	for _, e := range entries {
		if e.IsDir {
			l.folders[e.Name] = struct{}{}
			continue
		}
		l.files[e.Name] = struct{}{}
		if e.Ext != "" {
			l.extensions[e.Ext] = struct{}{}
		}
	}
	return l
}

// Entries returns the entries in the order the filesystem reported them.
func (l Listing) Entries() []Entry {
	return l.entries
}

// Len returns the number of entries.
func (l Listing) Len() int {
	return len(l.entries)
}

// Has reports whether any entry, file or directory, is called name.
func (l Listing) Has(name string) bool {
	return l.HasFile(name) || l.HasFolder(name)
}

// HasFile reports whether a non-directory entry is called name.
func (l Listing) HasFile(name string) bool {
	_, ok := l.files[name]
	return ok
}

// HasFolder reports whether a directory entry is called name.
func (l Listing) HasFolder(name string) bool {
	_, ok := l.folders[name]
	return ok
}

// HasExtension reports whether a file carries ext as its final suffix.
// ext is given without the dot.
func (l Listing) HasExtension(ext string) bool {
	_, ok := l.extensions[ext]
	return ok
}

// Err is the error the listing degraded from, if any. Only diagnostics look
// at it; matching treats a failed listing as empty.
func (l Listing) Err() error {
	return l.err
}

// Extension returns the final dot-delimited suffix of name without the dot.
// Hidden files without a further dot (".bashrc") have no extension.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}
