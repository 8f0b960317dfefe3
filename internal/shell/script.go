package shell

import (
	"fmt"
	"strings"
)

// OpKind는 스크립트 한 줄의 종류다.
type OpKind int

const (
	// OpSet은 환경 변수를 export한다.
	OpSet OpKind = iota
	// OpSetPrompt는 프롬프트 변수를 대입한다 (export하지 않는 셸도 있다).
	OpSetPrompt
	// OpSetPath는 검색 경로를 대입한다.
	OpSetPath
	// OpUnset은 변수를 제거한다.
	OpUnset
	// OpSource는 스크립트를 현재 세션에서 실행한다.
	OpSource
)

// Op는 세션에 적용할 하나의 작업이다. OpSource의 경우 Value가 스크립트 경로다.
type Op struct {
	Kind  OpKind
	Name  string
	Value string
}

// Set은 OpSet 작업을 만든다.
func Set(name, value string) Op { return Op{Kind: OpSet, Name: name, Value: value} }

// SetPrompt는 OpSetPrompt 작업을 만든다.
func SetPrompt(name, value string) Op { return Op{Kind: OpSetPrompt, Name: name, Value: value} }

// SetPath는 OpSetPath 작업을 만든다.
func SetPath(name, value string) Op { return Op{Kind: OpSetPath, Name: name, Value: value} }

// Unset은 OpUnset 작업을 만든다.
func Unset(name string) Op { return Op{Kind: OpUnset, Name: name} }

// Source는 OpSource 작업을 만든다.
func Source(path string) Op { return Op{Kind: OpSource, Value: path} }

// Render는 ops를 dialect 문법의 스크립트로 만든다. ops가 비어 있으면 빈 문자열이다.
func Render(d *Dialect, ops []Op) string {
	if len(ops) == 0 {
		return ""
	}
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(d.line(op))
		b.WriteString(d.Terminator)
		b.WriteByte('\n')
	}
	return b.String()
}

func (d *Dialect) line(op Op) string {
	switch op.Kind {
	case OpSetPrompt:
		return fmt.Sprintf(d.SetPrompt, op.Name, d.Quote(op.Value))
	case OpSetPath:
		if d.PathList {
			return fmt.Sprintf(d.SetVar, op.Name, d.quoteList(op.Value))
		}
		return fmt.Sprintf(d.SetVar, op.Name, d.Quote(op.Value))
	case OpUnset:
		return fmt.Sprintf(d.UnsetVar, op.Name)
	case OpSource:
		return fmt.Sprintf(d.Source, d.Quote(op.Value))
	default:
		return fmt.Sprintf(d.SetVar, op.Name, d.Quote(op.Value))
	}
}

func (d *Dialect) quoteList(v string) string {
	if v == "" {
		return ""
	}
	parts := strings.Split(v, d.PathSep)
	for i, p := range parts {
		parts[i] = d.Quote(p)
	}
	return strings.Join(parts, " ")
}
