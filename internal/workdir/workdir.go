// Package workdir holds the state shared by every module during one prompt
// render: the literal working directory, the home directory, the directory
// snapshot cache and memoized repository lookups.
package workdir

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hbjs97/promptline/internal/cache"
	"github.com/hbjs97/promptline/internal/repo"
)

// Context는 렌더링마다 한 번 만들어지고 버려진다. 모듈들이 동시에 사용해도 안전하다.
type Context struct {
	// CurrentDir is the working directory as the shell reports it; symlinks
	// are not resolved.
	CurrentDir string
	// HomeDir is "" when the home directory cannot be determined.
	HomeDir string

	snapshot *cache.Snapshot
	repos    cache.OnceMap[repo.Info]
	logger   *zap.Logger
}

type options struct {
	home      *string
	logger    *zap.Logger
	cacheOpts []cache.Option
}

// Option은 Context 설정 함수다.
type Option func(*options)

// WithHomeDir는 홈 디렉토리 조회를 덮어쓴다. 빈 문자열이면 ~ 축약을 끈다.
func WithHomeDir(dir string) Option {
	return func(o *options) { o.home = &dir }
}

// WithLogger는 스냅샷 캐시와 공유할 로거를 설정한다.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCacheOptions는 스냅샷 캐시 옵션을 그대로 전달한다.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(o *options) { o.cacheOpts = append(o.cacheOpts, opts...) }
}

// New는 start 기준의 Context를 생성한다. start가 비어 있으면 프로세스 작업 디렉토리를 쓴다.
// os.Getwd는 $PWD를 따르므로 심볼릭 링크 경로가 그대로 유지된다.
func New(start string, opts ...Option) *Context {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		} else {
			o.logger.Debug("working directory unavailable", zap.Error(err))
		}
	}
	if start != "" && !filepath.IsAbs(start) {
		if abs, err := filepath.Abs(start); err == nil {
			start = abs
		}
	}

	home := ""
	if o.home != nil {
		home = *o.home
	} else if h, err := os.UserHomeDir(); err == nil {
		home = h
	} else {
		o.logger.Debug("home directory unavailable", zap.Error(err))
	}

	cacheOpts := append([]cache.Option{cache.WithLogger(o.logger)}, o.cacheOpts...)
	return &Context{
		CurrentDir: start,
		HomeDir:    home,
		snapshot:   cache.New(cacheOpts...),
		logger:     o.logger,
	}
}

// Entries는 dir의 캐시된 목록을 반환한다.
func (c *Context) Entries(dir string) cache.Listing {
	return c.snapshot.Entries(dir)
}

// Home은 홈 디렉토리 또는 ""를 반환한다.
func (c *Context) Home() string {
	return c.HomeDir
}

// Locate는 path를 감싸는 리포지토리를 반환한다. 경로마다 한 번만 탐색한다.
func (c *Context) Locate(path string) repo.Info {
	if path == "" {
		return repo.Info{}
	}
	return c.repos.Get(filepath.Clean(path), func(p string) repo.Info {
		info := repo.Locate(c.snapshot, p)
		c.logger.Debug("repository lookup",
			zap.String("path", p), zap.Bool("found", info.Found), zap.String("root", info.Root))
		return info
	})
}

// Repo는 현재 디렉토리를 감싸는 리포지토리를 반환한다.
func (c *Context) Repo() repo.Info {
	return c.Locate(c.CurrentDir)
}

// Logger는 컨텍스트의 로거를 반환한다.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// Reads는 지금까지 디스크에서 읽은 디렉토리 수를 반환한다.
func (c *Context) Reads() int64 {
	return c.snapshot.Reads()
}
