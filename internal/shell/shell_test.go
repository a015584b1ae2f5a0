package shell_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/promptline/internal/shell"
)

func TestHookSnippet_Zsh(t *testing.T) {
	snippet, err := shell.HookSnippet("zsh")
	require.NoError(t, err)
	assert.Contains(t, snippet, "precmd_functions+=(_promptline_precmd)")
	assert.Contains(t, snippet, `promptline prompt --shell zsh --path "$PWD"`)
	assert.Contains(t, snippet, `PROMPT='${_promptline_line}'`)
}

func TestHookSnippet_Bash(t *testing.T) {
	snippet, err := shell.HookSnippet("bash")
	require.NoError(t, err)
	assert.Contains(t, snippet, "PROMPT_COMMAND=")
	assert.Contains(t, snippet, `PS1='${_promptline_line}'`)
	assert.Contains(t, snippet, `promptline prompt --shell bash --path "$PWD"`)
}

func TestHookSnippet_Fish(t *testing.T) {
	snippet, err := shell.HookSnippet("fish")
	require.NoError(t, err)
	assert.Contains(t, snippet, "function fish_prompt")
	assert.Contains(t, snippet, "end")
}

func TestHookSnippet_Unsupported(t *testing.T) {
	for _, s := range []string{"", "tcsh", "powershell"} {
		snippet, err := shell.HookSnippet(s)
		assert.ErrorIs(t, err, shell.ErrUnsupportedShell, s)
		assert.Empty(t, snippet)
	}
}

func TestSupported_AllHaveSnippets(t *testing.T) {
	for _, s := range shell.Supported {
		snippet, err := shell.HookSnippet(s)
		require.NoError(t, err, s)
		assert.Contains(t, snippet, "promptline shell integration ("+s+")")
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name      string
		shellType string
		text      string
		want      string
	}{
		{"raw output untouched", "", `in ~/$(touch x) 100% \w `, `in ~/$(touch x) 100% \w `},
		{"fish untouched", "fish", "in ~/`id` ", "in ~/`id` "},
		{"bash doubles backslashes", "bash", `in ~/a\w\$ `, `in ~/a\\w\\$ `},
		{"bash leaves dollar for promptvars-off", "bash", "in ~/$(touch x) ", "in ~/$(touch x) "},
		{"zsh doubles percent", "zsh", "in ~/100%d%~ ", "in ~/100%%d%%~ "},
		{"zsh leaves dollar to hook", "zsh", "in ~/$(touch x) ", "in ~/$(touch x) "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shell.Escape(tt.shellType, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscape_Unsupported(t *testing.T) {
	_, err := shell.Escape("tcsh", "in ~ ")
	assert.ErrorIs(t, err, shell.ErrUnsupportedShell)
}

// TestHookSnippet_BashDoesNotExpandDirectoryNames sources the bash hook with a
// stand-in promptline that prints a hostile directory name, then expands PS1
// the way bash does before drawing the prompt.
func TestHookSnippet_BashDoesNotExpandDirectoryNames(t *testing.T) {
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not installed")
	}
	snippet, err := shell.HookSnippet("bash")
	require.NoError(t, err)

	for _, promptvars := range []string{"-s", "-u"} {
		t.Run("shopt "+promptvars+" promptvars", func(t *testing.T) {
			// Given: a directory name that runs touch if expanded
			mark := filepath.Join(t.TempDir(), "pwned")
			line := "in ~/$(touch " + mark + ")`touch " + mark + "` "
			script := strings.Join([]string{
				`if ((BASH_VERSINFO[0] < 4 || (BASH_VERSINFO[0] == 4 && BASH_VERSINFO[1] < 4))); then exit 3; fi`,
				`promptline() { printf '%s' "$PROMPTLINE_LINE"; }`,
				`eval "$PROMPTLINE_HOOK"`,
				"shopt " + promptvars + " promptvars",
				`_promptline_prompt_command`,
				`printf '%s' "${PS1@P}"`,
			}, "\n")

			// When: the hook runs and PS1 is expanded
			cmd := exec.Command(bash, "--norc", "--noprofile", "-c", script)
			cmd.Env = append(os.Environ(), "PROMPTLINE_LINE="+line, "PROMPTLINE_HOOK="+snippet)
			out, err := cmd.Output()
			if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 3 {
				t.Skip("bash older than 4.4 has no ${PS1@P}")
			}
			require.NoError(t, err)

			// Then: the prompt shows the name literally and nothing ran
			assert.Equal(t, line, string(out))
			assert.NoFileExists(t, mark)
		})
	}
}
