package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbjs97/promptline/internal/module"
	"github.com/hbjs97/promptline/internal/prompt"
	"github.com/hbjs97/promptline/internal/shell"
)

const (
	pathUsage  = "기준 디렉토리 (기본: 현재 디렉토리, ~ 허용)"
	shellUsage = "출력을 이 셸의 프롬프트 변수용으로 이스케이프한다 (bash, zsh, fish)"
)

// writeEscaped는 text를 shellType에 맞게 이스케이프해 출력한다.
func writeEscaped(cmd *cobra.Command, shellType, text string) error {
	escaped, err := shell.Escape(shellType, text)
	if err != nil {
		return fmt.Errorf("cli.%s: %w", cmd.Name(), err)
	}
	fmt.Fprint(cmd.OutOrStdout(), escaped)
	return nil
}

func (a *App) newPromptCmd() *cobra.Command {
	var path, shellType string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "프롬프트 한 줄을 출력한다",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrompt(cmd, path, shellType)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", pathUsage)
	cmd.Flags().StringVar(&shellType, "shell", "", shellUsage)
	return cmd
}

func (a *App) runPrompt(cmd *cobra.Command, path, shellType string) error {
	s, err := a.open(cmd, path)
	if err != nil {
		return err
	}
	defer s.close()

	line, err := prompt.Render(cmd.Context(), s.wc, s.cfg)
	if err != nil {
		return fmt.Errorf("cli.prompt: %w", err)
	}
	return writeEscaped(cmd, shellType, line)
}

func (a *App) newModuleCmd() *cobra.Command {
	var path, shellType string

	cmd := &cobra.Command{
		Use:   "module NAME",
		Short: "모듈 하나만 출력한다",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runModule(cmd, args[0], path, shellType)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", pathUsage)
	cmd.Flags().StringVar(&shellType, "shell", "", shellUsage)
	return cmd
}

func (a *App) runModule(cmd *cobra.Command, name, path, shellType string) error {
	m, err := module.Lookup(name)
	if err != nil {
		return fmt.Errorf("cli.module: %w", err)
	}
	s, err := a.open(cmd, path)
	if err != nil {
		return err
	}
	defer s.close()

	if s.cfg.IsDisabled(name) {
		return nil
	}
	results, err := prompt.Evaluate(cmd.Context(), s.wc, s.cfg, []module.Module{m})
	if err != nil {
		return fmt.Errorf("cli.module: %w", err)
	}
	return writeEscaped(cmd, shellType, prompt.Join(results))
}

func (a *App) newExplainCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "모듈별 활성 여부와 출력, 소요 시간을 보여준다",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExplain(cmd, path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", pathUsage)
	return cmd
}

func (a *App) runExplain(cmd *cobra.Command, path string) error {
	s, err := a.open(cmd, path)
	if err != nil {
		return err
	}
	defer s.close()

	// Disabled modules are evaluated too so the listing is complete.
	mods := make([]module.Module, 0, len(s.cfg.Order))
	for _, name := range s.cfg.Order {
		m, err := module.Lookup(name)
		if err != nil {
			return fmt.Errorf("cli.explain: %w", err)
		}
		mods = append(mods, m)
	}
	results, err := prompt.Evaluate(cmd.Context(), s.wc, s.cfg, mods)
	if err != nil {
		return fmt.Errorf("cli.explain: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path: %s\n", s.wc.CurrentDir)
	if info := s.wc.Repo(); info.Found {
		fmt.Fprintf(out, "repo: %s\n", info.Root)
	}
	for i, r := range results {
		fmt.Fprintf(out, "  [%s] %-10s %-8s %q  %s\n",
			explainState(r, s.cfg.IsDisabled(r.Name)),
			r.Name,
			r.Duration.Round(time.Microsecond),
			r.Text,
			mods[i].Description,
		)
	}
	return nil
}

func explainState(r prompt.Result, disabled bool) string {
	switch {
	case disabled:
		return "OFF"
	case r.Active:
		return "ON"
	default:
		return "--"
	}
}
