// Package prompt evaluates modules against one working context and joins
// their text into the prompt line.
package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hbjs97/promptline/internal/config"
	"github.com/hbjs97/promptline/internal/module"
	"github.com/hbjs97/promptline/internal/workdir"
)

// Result는 모듈 하나의 평가 결과다.
type Result struct {
	Name     string
	Text     string
	Active   bool
	Duration time.Duration
}

// Evaluate는 mods를 동시에 렌더링한다. 모든 모듈이 wc를 공유하므로 디렉토리는 최대 한 번만 읽힌다.
// 결과는 mods 순서를 따른다.
func Evaluate(ctx context.Context, wc *workdir.Context, cfg *config.Config, mods []module.Module) ([]Result, error) {
	results := make([]Result, len(mods))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, m := range mods {
		eg.Go(func() error {
			start := time.Now()
			text, ok := m.Render(egCtx, wc, cfg)
			results[i] = Result{
				Name:     m.Name,
				Text:     text,
				Active:   ok,
				Duration: time.Since(start),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("prompt.Evaluate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("prompt.Evaluate: %w", err)
	}

	for _, r := range results {
		wc.Logger().Debug("module evaluated",
			zap.String("module", r.Name),
			zap.Bool("active", r.Active),
			zap.Duration("took", r.Duration),
		)
	}
	return results, nil
}

// Render는 cfg.Order의 활성 모듈 텍스트를 이어 붙인 프롬프트를 반환한다.
func Render(ctx context.Context, wc *workdir.Context, cfg *config.Config) (string, error) {
	mods, err := module.Resolve(cfg)
	if err != nil {
		return "", fmt.Errorf("prompt.Render: %w", err)
	}
	results, err := Evaluate(ctx, wc, cfg, mods)
	if err != nil {
		return "", fmt.Errorf("prompt.Render: %w", err)
	}
	return Join(results), nil
}

// Join은 활성 결과의 텍스트를 이어 붙인다.
func Join(results []Result) string {
	var b strings.Builder
	for _, r := range results {
		if r.Active {
			b.WriteString(r.Text)
		}
	}
	return b.String()
}
