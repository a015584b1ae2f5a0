package module

import (
	"context"

	"go.uber.org/zap"

	"github.com/hbjs97/promptline/internal/config"
	"github.com/hbjs97/promptline/internal/directory"
	"github.com/hbjs97/promptline/internal/repo"
	"github.com/hbjs97/promptline/internal/workdir"
)

func directoryModule() Module {
	return Module{
		Name:          "directory",
		Description:   "The current working directory",
		DefaultPrefix: directory.DefaultConfig().Prefix,
		render: func(_ context.Context, wc *workdir.Context, cfg *config.Config) (string, bool) {
			d := cfg.Directory
			subs := []directory.Substitution(d.Substitutions)
			return directory.Render(wc, wc.CurrentDir, subs, d.Truncation()), true
		},
	}
}

func gitBranchModule() Module {
	m := Module{
		Name:          "git_branch",
		Description:   "The active branch of the repo in your current directory",
		DefaultSymbol: "\ue0a0 ",
		DefaultPrefix: "on ",
	}
	m.render = func(_ context.Context, wc *workdir.Context, cfg *config.Config) (string, bool) {
		info := wc.Repo()
		if !info.Found {
			return "", false
		}
		branch, err := repo.Branch(info.Root)
		if err != nil {
			wc.Logger().Debug("read branch failed", zap.String("root", info.Root), zap.Error(err))
			return "", false
		}
		return m.format(cfg, branch), true
	}
	return m
}
