package cli

import (
	"errors"

	"github.com/hbjs97/condact/internal/activator"
)

// ExitCode는 condact의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitUsage는 잘못된 인자나 플래그다.
	ExitUsage ExitCode = 2
	// ExitInvocation는 source 없이 호출된 경우다.
	ExitInvocation ExitCode = 3
	// ExitNotFound는 환경을 찾지 못한 경우다.
	ExitNotFound ExitCode = 4
	// ExitNotAnEnvironment는 디렉토리가 환경이 아닌 경우다.
	ExitNotAnEnvironment ExitCode = 5
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 6
)

// MapExitCode는 sentinel/typed error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var usage *activator.UsageError
	var invocation *activator.InvocationError
	switch {
	case errors.As(err, &usage), errors.Is(err, activator.ErrHelp), errors.Is(err, ErrUnknownDialect):
		return ExitUsage
	case errors.As(err, &invocation):
		return ExitInvocation
	case errors.Is(err, ErrEnvironmentNotFound):
		return ExitNotFound
	case errors.Is(err, ErrNotAnEnvironment):
		return ExitNotAnEnvironment
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
