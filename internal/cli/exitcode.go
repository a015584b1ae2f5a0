package cli

import (
	"errors"
)

// ExitCode는 promptline의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitUsage는 잘못된 명령 사용이다 (알 수 없는 모듈, 지원하지 않는 셸 포함).
	ExitUsage ExitCode = 2
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrUnknownModule),
		errors.Is(err, ErrUnsupportedShell):
		return ExitUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
