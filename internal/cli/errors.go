package cli

import (
	"errors"

	"github.com/hbjs97/promptline/internal/config"
	"github.com/hbjs97/promptline/internal/module"
	"github.com/hbjs97/promptline/internal/shell"
)

// ErrUsage는 잘못된 인자나 플래그로 명령을 호출했을 때의 sentinel error다.
var ErrUsage = errors.New("usage error")

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrUnknownModule는 존재하지 않는 모듈 이름을 요청했을 때의 sentinel error다.
	ErrUnknownModule = module.ErrUnknownModule
	// ErrUnsupportedShell는 hook 스니펫이 없는 셸을 요청했을 때의 sentinel error다.
	ErrUnsupportedShell = shell.ErrUnsupportedShell
)
