package cli

import (
	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/resolver"
	"github.com/hbjs97/condact/internal/shell"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrEnvironmentNotFound는 ENV 인자에 해당하는 디렉토리가 없을 때의 sentinel error다.
	ErrEnvironmentNotFound = resolver.ErrEnvironmentNotFound
	// ErrNotAnEnvironment는 디렉토리가 conda 환경이 아닐 때의 sentinel error다.
	ErrNotAnEnvironment = resolver.ErrNotAnEnvironment
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrUnknownDialect는 지원하지 않는 --shell 값의 sentinel error다.
	ErrUnknownDialect = shell.ErrUnknownDialect
)
