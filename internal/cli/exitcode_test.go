package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hbjs97/promptline/internal/cli"
)

func TestMapExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want cli.ExitCode
	}{
		{"nil", nil, cli.ExitSuccess},
		{"plain error", errors.New("boom"), cli.ExitGeneral},
		{"usage", fmt.Errorf("%w: accepts 1 arg(s)", cli.ErrUsage), cli.ExitUsage},
		{"unknown module", fmt.Errorf("cli.module: %w", cli.ErrUnknownModule), cli.ExitUsage},
		{"unsupported shell", fmt.Errorf("cli.init: %w", cli.ErrUnsupportedShell), cli.ExitUsage},
		{"config", fmt.Errorf("config.Load: %w: bad", cli.ErrConfig), cli.ExitConfigError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.MapExitCode(tt.err))
		})
	}
}
