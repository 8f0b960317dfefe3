// Package prompt는 활성 환경 이름으로 셸 프롬프트를 꾸미고 되돌린다.
package prompt

import (
	"github.com/hbjs97/condact/internal/session"
	"github.com/hbjs97/condact/internal/shell"
)

// Manager는 changeps1 설정을 반영하는 프롬프트 관리자다.
type Manager struct {
	Enabled bool
}

// Decorate는 "(name) " 접두어를 붙인 프롬프트를 만든다.
func Decorate(raw, name string) string {
	return "(" + name + ") " + raw
}

func (m Manager) active(d *shell.Dialect) bool {
	return m.Enabled && d.PromptVar != ""
}

// Activate는 활성화 시 프롬프트 ops를 만든다.
// 원본 프롬프트는 백업이 있으면 백업, 없으면 현재 값이며, 백업은 한 번만 저장한다.
// 이미 꾸며진 프롬프트를 다시 꾸미지 않는다.
func (m Manager) Activate(d *shell.Dialect, env session.Environ, st session.State, name string) []shell.Op {
	if !m.active(d) {
		return nil
	}
	raw := st.PromptBackup
	var ops []shell.Op
	if !st.HasPromptBackup {
		raw = env.Get(d.PromptVar)
		ops = append(ops, shell.Set(session.PromptBackupVar, raw))
	}
	return append(ops, shell.SetPrompt(d.PromptVar, Decorate(raw, name)))
}

// Deactivate는 백업을 현재 프롬프트로 되돌리고 백업을 지운다.
// 백업이 없으면 프롬프트를 건드리지 않는다. 꾸미기가 꺼져 있으면 프롬프트는 두고 백업만 지운다.
func (m Manager) Deactivate(d *shell.Dialect, st session.State) []shell.Op {
	if !st.HasPromptBackup {
		return nil
	}
	if !m.active(d) {
		return []shell.Op{shell.Unset(session.PromptBackupVar)}
	}
	return []shell.Op{
		shell.SetPrompt(d.PromptVar, st.PromptBackup),
		shell.Unset(session.PromptBackupVar),
	}
}
