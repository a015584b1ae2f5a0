// Package cache holds the per-render directory snapshot cache. Every module
// that lists a directory goes through one Snapshot, so each directory is
// read from disk at most once per prompt.
package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
)

// ReadDirFunc lists a directory. os.ReadDir is used in production.
type ReadDirFunc func(dir string) ([]fs.DirEntry, error)

// StatFunc resolves a symlinked entry to its target.
type StatFunc func(path string) (fs.FileInfo, error)

// Snapshot is a memoized, lazily filled table of directory listings.
// It is safe for concurrent use.
type Snapshot struct {
	readDir ReadDirFunc
	stat    StatFunc
	logger  *zap.Logger
	lists   OnceMap[Listing]
	reads   atomic.Int64
}

// Option configures a Snapshot.
type Option func(*Snapshot)

// WithReadDir replaces the directory reader.
func WithReadDir(fn ReadDirFunc) Option {
	return func(s *Snapshot) { s.readDir = fn }
}

// WithStat replaces the function used to follow symlinked entries.
func WithStat(fn StatFunc) Option {
	return func(s *Snapshot) { s.stat = fn }
}

// WithLogger sets the logger used for degraded listings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Snapshot) { s.logger = l }
}

// New creates an empty snapshot.
func New(opts ...Option) *Snapshot {
	s := &Snapshot{
		readDir: os.ReadDir,
		stat:    os.Stat,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entries returns the listing of dir, reading it on first use.
// Unreadable directories yield an empty listing.
func (s *Snapshot) Entries(dir string) Listing {
	return s.lists.Get(filepath.Clean(dir), s.load)
}

// Reads returns how many directories were actually read from disk.
func (s *Snapshot) Reads() int64 {
	return s.reads.Load()
}

func (s *Snapshot) load(dir string) Listing {
	s.reads.Add(1)

	dirEntries, err := s.readDir(dir)
	if err != nil {
		s.logger.Debug("list directory failed", zap.String("dir", dir), zap.Error(err))
		return newListing(nil, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			// dangling links stay files
			if info, err := s.stat(filepath.Join(dir, name)); err == nil {
				isDir = info.IsDir()
			}
		}
		e := Entry{Name: name, IsDir: isDir}
		if !isDir {
			e.Ext = Extension(name)
		}
		entries = append(entries, e)
	}
	return newListing(entries, nil)
}
