// Package module defines the prompt modules. Matching is data: each module
// carries scan criteria, and only the directory and git_branch modules
// compute their text from more than files in the working directory.
package module

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hbjs97/promptline/internal/config"
	"github.com/hbjs97/promptline/internal/scan"
	"github.com/hbjs97/promptline/internal/workdir"
)

// ErrUnknownModule는 카탈로그에 없는 모듈 이름을 요청했을 때의 sentinel error다.
var ErrUnknownModule = errors.New("unknown module")

// RenderFunc는 모듈 텍스트를 계산한다. 적용되지 않으면 ok=false다.
type RenderFunc func(ctx context.Context, wc *workdir.Context, cfg *config.Config) (text string, ok bool)

// Module은 프롬프트 구성 요소 하나다.
type Module struct {
	Name          string
	Description   string
	DefaultSymbol string
	DefaultPrefix string
	Include       []scan.Criteria
	Exclude       []scan.Criteria

	// detail reads an optional version string from project files.
	detail func(wc *workdir.Context) string
	// render replaces the scan-and-format path entirely.
	render RenderFunc
}

// Render는 wc에 대한 모듈 텍스트를 반환한다. 비활성이면 ok=false다.
func (m Module) Render(ctx context.Context, wc *workdir.Context, cfg *config.Config) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	if m.render != nil {
		return m.render(ctx, wc, cfg)
	}
	if !scan.IsActive(wc, wc.CurrentDir, m.Include, m.Exclude) {
		return "", false
	}

	detail := ""
	if m.detail != nil {
		detail = m.detail(wc)
	}
	return m.format(cfg, detail), true
}

func (m Module) format(cfg *config.Config, detail string) string {
	mc, _ := cfg.Module(m.Name)
	symbol := mc.Symbol
	if symbol == "" {
		symbol = m.DefaultSymbol
	}
	return mc.PrefixOr(m.DefaultPrefix) + strings.TrimSpace(symbol+detail) + " "
}

// All은 기본 프롬프트 순서로 전체 모듈을 반환한다.
func All() []Module {
	out := make([]Module, 0, len(config.KnownModules))
	for _, name := range config.KnownModules {
		out = append(out, catalogue[name])
	}
	return out
}

// Lookup은 이름으로 모듈을 조회한다.
func Lookup(name string) (Module, error) {
	m, ok := catalogue[name]
	if !ok {
		return Module{}, fmt.Errorf("module.Lookup: %w: %s", ErrUnknownModule, name)
	}
	return m, nil
}

// Resolve는 cfg.Order 중 활성화된 모듈을 순서대로 반환한다.
func Resolve(cfg *config.Config) ([]Module, error) {
	var out []Module
	for _, name := range cfg.Order {
		m, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if cfg.IsDisabled(name) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

var catalogue = map[string]Module{
	"directory":  directoryModule(),
	"git_branch": gitBranchModule(),
	"nodejs":     nodejsModule(),
	"golang":     golangModule(),
	"rust":       rustModule(),
	"python":     pythonModule(),
}
