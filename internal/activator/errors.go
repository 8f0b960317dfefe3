package activator

import "errors"

// ErrHelp는 인자에 --help 또는 -h가 있을 때 반환된다. 호출자는 사용법을 stderr에 출력한다.
var ErrHelp = errors.New("help requested")

// 고정 사용법 오류 문구.
const (
	MsgActivateArgs    = "activate only accepts a single argument"
	MsgDeactivateArgs  = "deactivate does not accept arguments"
	MsgHoldUnsupported = "deactivate --hold is only supported by cmd.exe"
)

// UsageError는 잘못된 인자 개수나 형식이다.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// InvocationError는 세션을 바꿀 수 없는 방식(source 없이 실행)으로 호출됐음을 나타낸다.
type InvocationError struct {
	Op string
}

func (e *InvocationError) Error() string { return e.Op + " must be sourced" }
