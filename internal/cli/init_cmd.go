package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbjs97/promptline/internal/shell"
)

func (a *App) newInitCmd() *cobra.Command {
	var install bool

	cmd := &cobra.Command{
		Use:   "init [SHELL]",
		Short: "셸 통합 스니펫을 출력한다",
		Long: fmt.Sprintf("셸 통합 스니펫을 출력한다. SHELL을 생략하면 $SHELL에서 감지한다.\n지원 셸: %s\n\n  eval \"$(promptline init zsh)\"",
			strings.Join(shell.Supported, ", ")),
		ValidArgs: shell.Supported,
		Args:      usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			shellType := shell.DetectShell()
			if len(args) == 1 {
				shellType = args[0]
			}
			if install {
				return a.runInstall(cmd, shellType)
			}
			snippet, err := shell.HookSnippet(shellType)
			if err != nil {
				return fmt.Errorf("cli.init: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), snippet)
			return nil
		},
	}
	cmd.Flags().BoolVar(&install, "install", false, "스니펫을 셸 RC 파일에 추가")
	return cmd
}

func (a *App) runInstall(cmd *cobra.Command, shellType string) error {
	rcPath := shell.RCPath(shellType, a.homeDir())
	if rcPath == "" {
		return fmt.Errorf("cli.init: %w: %q", ErrUnsupportedShell, shellType)
	}
	installed, err := shell.Install(shellType, rcPath)
	if err != nil {
		return fmt.Errorf("cli.init: %w", err)
	}
	if installed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s 에 hook 추가 완료\n", rcPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s 에 이미 설치됨\n", rcPath)
	}
	return nil
}
