package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// marker는 설치 여부를 판단하는 스니펫 첫 줄의 공통 부분이다.
const marker = "promptline shell integration"

// DetectShell은 $SHELL에서 현재 사용자의 셸 이름을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// RCPath는 셸별 RC 파일 경로를 반환한다. 지원하지 않는 셸이면 빈 문자열이다.
func RCPath(shellType, home string) string {
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "promptline.fish")
	default:
		return ""
	}
}

// Install은 RC 파일에 hook 스니펫을 추가한다.
// 이미 설치되어 있으면 건너뛰고 installed=false를 반환한다.
func Install(shellType, rcPath string) (installed bool, err error) {
	snippet, err := HookSnippet(shellType)
	if err != nil {
		return false, err
	}

	existing, _ := os.ReadFile(rcPath) // 파일이 없으면 빈 바이트
	if strings.Contains(string(existing), marker) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0700); err != nil {
		return false, fmt.Errorf("shell.Install: %w", err)
	}
	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return false, fmt.Errorf("shell.Install: %w", err)
	}
	if err := appendSnippet(f, snippet); err != nil {
		return false, fmt.Errorf("shell.Install: %w", err)
	}
	return true, nil
}

// appendSnippet는 snippet을 w에 쓰고 닫는다. 닫기 실패도 쓰기 실패로 본다.
func appendSnippet(w io.WriteCloser, snippet string) error {
	if _, err := fmt.Fprintf(w, "\n%s", snippet); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
