// Package session은 셸 세션의 환경 변수 스냅샷과 활성화 상태를 다룬다.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hbjs97/condact/internal/shell"
)

// 세션 변수 이름. 기존 conda 셸 스크립트와 같은 이름을 쓴다.
const (
	PathVar         = "PATH"
	DefaultEnvVar   = "CONDA_DEFAULT_ENV"
	PrefixVar       = "CONDA_PREFIX"
	PathBackupVar   = "CONDA_PATH_BACKUP"
	PromptBackupVar = "CONDA_PS1_BACKUP"
)

// PlaceholderToken은 Batch 셸의 PATH 안에서 관리 구간을 표시하는 토큰이다.
const PlaceholderToken = "CONDA_PATH_PLACEHOLDER"

// BaseMarker는 base 환경이 활성일 때 DefaultEnvVar에 들어가는 값이다.
const BaseMarker = "root"

// ErrInconsistent는 활성 표식은 있는데 백업이 없는 세션에서 반환된다.
var ErrInconsistent = errors.New("inconsistent activation state")

// Environ은 세션 환경 변수의 스냅샷이다.
type Environ map[string]string

// FromList는 os.Environ() 형식의 목록을 Environ으로 바꾼다.
// 대소문자만 다른 PATH 변수(Windows의 "Path")는 PATH로 모은다.
func FromList(list []string) Environ {
	env := make(Environ, len(list))
	for _, kv := range list {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		if name != PathVar && strings.EqualFold(name, PathVar) {
			if _, exists := env[PathVar]; exists {
				continue
			}
			name = PathVar
		}
		env[name] = value
	}
	return env
}

// Lookup은 변수 값과 존재 여부를 반환한다.
func (e Environ) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}

// Get은 변수 값을 반환한다. 없으면 빈 문자열이다.
func (e Environ) Get(name string) string {
	return e[name]
}

// Clone은 독립된 사본을 만든다.
func (e Environ) Clone() Environ {
	out := make(Environ, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Apply는 ops를 셸이 평가한 것처럼 적용한 새 스냅샷을 반환한다.
// OpSource는 스크립트 내용을 알 수 없으므로 건너뛴다.
func (e Environ) Apply(ops []shell.Op) Environ {
	out := e.Clone()
	for _, op := range ops {
		switch op.Kind {
		case shell.OpSet, shell.OpSetPrompt, shell.OpSetPath:
			out[op.Name] = op.Value
		case shell.OpUnset:
			delete(out, op.Name)
		}
	}
	return out
}

// List는 "NAME=VALUE" 목록을 이름 순으로 반환한다. exec.Cmd.Env에 그대로 쓸 수 있다.
func (e Environ) List() []string {
	names := make([]string, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	sort.Strings(names)
	list := make([]string, 0, len(names))
	for _, k := range names {
		list = append(list, k+"="+e[k])
	}
	return list
}

// State는 세션 변수에서 읽어 낸 활성화 상태다.
// 첫 활성화에서 만들어지고, 호출마다 다시 쓰이며, 완전한 비활성화에서 지워진다.
type State struct {
	// DefaultEnv는 활성 환경의 표식이다. 정규 경로 또는 BaseMarker.
	DefaultEnv string
	// Prefix는 활성 환경의 정규 경로다. 이전 버전이 남긴 세션에는 없을 수 있다.
	Prefix string

	PathBackup    string
	HasPathBackup bool

	PromptBackup    string
	HasPromptBackup bool
}

// Load는 세션 스냅샷에서 State를 읽는다.
func Load(env Environ) State {
	var s State
	s.DefaultEnv = env.Get(DefaultEnvVar)
	s.Prefix = env.Get(PrefixVar)
	s.PathBackup, s.HasPathBackup = env.Lookup(PathBackupVar)
	s.PromptBackup, s.HasPromptBackup = env.Lookup(PromptBackupVar)
	return s
}

// Active는 활성 환경이 있는지 보고한다.
func (s State) Active() bool {
	return s.DefaultEnv != ""
}

// ActivePrefix는 활성 환경의 prefix를 돌려준다.
// PrefixVar가 없으면 표식에서 유도한다 (BaseMarker는 rootPrefix).
func (s State) ActivePrefix(rootPrefix string) string {
	switch {
	case !s.Active():
		return ""
	case s.Prefix != "":
		return s.Prefix
	case s.DefaultEnv == BaseMarker:
		return rootPrefix
	default:
		return s.DefaultEnv
	}
}

// Check는 활성 상태이면 경로 백업이 있어야 한다는 불변식을 검사한다.
func (s State) Check() error {
	if s.Active() && !s.HasPathBackup {
		return fmt.Errorf("%w: %s is set but %s is missing", ErrInconsistent, DefaultEnvVar, PathBackupVar)
	}
	return nil
}

// Commit은 활성 환경 표식과 경로 백업을 기록하는 ops를 만든다.
// 프롬프트 백업은 prompt 패키지가 관리한다.
func Commit(s State) []shell.Op {
	ops := []shell.Op{
		shell.Set(DefaultEnvVar, s.DefaultEnv),
		shell.Set(PrefixVar, s.Prefix),
	}
	if s.HasPathBackup {
		ops = append(ops, shell.Set(PathBackupVar, s.PathBackup))
	}
	return ops
}

// Clear는 활성 환경 표식과 경로 백업을 지우는 ops를 만든다.
func Clear() []shell.Op {
	return []shell.Op{
		shell.Unset(DefaultEnvVar),
		shell.Unset(PrefixVar),
		shell.Unset(PathBackupVar),
	}
}
