package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedShell는 hook 스니펫이 없는 셸을 요청했을 때의 sentinel error다.
var ErrUnsupportedShell = errors.New("unsupported shell")

// Supported는 hook 스니펫을 제공하는 셸 목록이다.
var Supported = []string{"bash", "zsh", "fish"}

// HookSnippet는 매 프롬프트마다 promptline prompt를 호출하는 셸 스니펫을 반환한다.
//
// 출력은 변수에 담고 프롬프트 변수는 그 변수를 참조만 한다. 파라미터 확장 결과는
// 다시 확장되지 않으므로 디렉토리 이름의 $(...)나 `...`가 실행되지 않는다.
func HookSnippet(shellType string) (string, error) {
	switch shellType {
	case "zsh":
		return `# promptline shell integration (zsh)
_promptline_precmd() {
  _promptline_line="$(promptline prompt --shell zsh --path "$PWD" 2>/dev/null)"
  if [[ -o prompt_subst ]]; then
    PROMPT='${_promptline_line}'
  else
    PROMPT="${_promptline_line}"
  fi
}
precmd_functions+=(_promptline_precmd)
`, nil
	case "bash":
		return `# promptline shell integration (bash)
_promptline_prompt_command() {
  if shopt -q promptvars; then
    _promptline_line="$(promptline prompt --path "$PWD" 2>/dev/null)"
    PS1='${_promptline_line}'
  else
    PS1="$(promptline prompt --shell bash --path "$PWD" 2>/dev/null)"
  fi
}
PROMPT_COMMAND="_promptline_prompt_command${PROMPT_COMMAND:+;${PROMPT_COMMAND}}"
`, nil
	case "fish":
		return `# promptline shell integration (fish)
function fish_prompt
  promptline prompt --shell fish --path "$PWD" 2>/dev/null
end
`, nil
	default:
		return "", fmt.Errorf("shell.HookSnippet: %w: %q", ErrUnsupportedShell, shellType)
	}
}

// Escape는 text를 shellType의 프롬프트 변수에 그대로 대입해도 글자 그대로
// 보이도록 이스케이프한다. shellType이 빈 문자열이면 text를 그대로 반환한다.
//
// bash는 promptvars가 꺼진 경우의 PS1 대입용으로 백슬래시만 이스케이프한다.
// zsh는 파라미터 치환 뒤에도 % 확장을 하므로 %를 두 번 쓴다.
// fish_prompt 출력은 해석되지 않는다.
func Escape(shellType, text string) (string, error) {
	switch shellType {
	case "", "fish":
		return text, nil
	case "bash":
		return strings.ReplaceAll(text, `\`, `\\`), nil
	case "zsh":
		return strings.ReplaceAll(text, "%", "%%"), nil
	default:
		return "", fmt.Errorf("shell.Escape: %w: %q", ErrUnsupportedShell, shellType)
	}
}
