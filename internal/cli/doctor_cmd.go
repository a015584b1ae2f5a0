package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/promptline/internal/doctor"
)

func (a *App) newDoctorCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd, path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", pathUsage)
	return cmd
}

func (a *App) runDoctor(cmd *cobra.Command, path string) error {
	// doctor는 설정이 깨져 있어도 동작해야 하므로 설정 없이 컨텍스트를 만든다.
	logger := zap.NewNop()
	if a.Verbose {
		if s, err := a.open(cmd, path); err == nil {
			defer s.close()
			logger = s.logger
		}
	}
	results := doctor.RunAll(a.CfgPath, a.newWorkdir(path, logger))
	printDiagResults(cmd.OutOrStdout(), results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(w io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		icon := statusIcon(r.Status)
		fmt.Fprintf(w, "  [%s] %s: %s\n", icon, r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
