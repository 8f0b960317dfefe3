package prompt_test

import (
	"testing"

	"github.com/hbjs97/condact/internal/prompt"
	"github.com/hbjs97/condact/internal/session"
	"github.com/hbjs97/condact/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialect(t *testing.T, id string) *shell.Dialect {
	t.Helper()
	d, err := shell.Lookup(id)
	require.NoError(t, err)
	return d
}

func TestDecorate(t *testing.T) {
	assert.Equal(t, "(my env) $ ", prompt.Decorate("$ ", "my env"))
	assert.Equal(t, "(환경) ", prompt.Decorate("", "환경"))
}

func TestActivate_StoresBackupOnce(t *testing.T) {
	m := prompt.Manager{Enabled: true}
	bash := dialect(t, "bash")

	env := session.Environ{"PS1": "$ "}
	env = env.Apply(m.Activate(bash, env, session.Load(env), "a"))
	assert.Equal(t, "(a) $ ", env["PS1"])
	assert.Equal(t, "$ ", env[session.PromptBackupVar])

	env = env.Apply(m.Activate(bash, env, session.Load(env), "b"))
	assert.Equal(t, "(b) $ ", env["PS1"], "decorates from the stored raw prompt")
	assert.Equal(t, "$ ", env[session.PromptBackupVar])
}

func TestActivate_MissingPrompt(t *testing.T) {
	m := prompt.Manager{Enabled: true}
	env := session.Environ{}
	env = env.Apply(m.Activate(dialect(t, "zsh"), env, session.Load(env), "a"))
	assert.Equal(t, "(a) ", env["PS1"])
	v, ok := env.Lookup(session.PromptBackupVar)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestDeactivate(t *testing.T) {
	m := prompt.Manager{Enabled: true}
	bash := dialect(t, "bash")

	env := session.Environ{"PS1": "(a) $ ", session.PromptBackupVar: "$ "}
	env = env.Apply(m.Deactivate(bash, session.Load(env)))
	assert.Equal(t, session.Environ{"PS1": "$ "}, env)

	assert.Empty(t, m.Deactivate(bash, session.Load(session.Environ{"PS1": "custom"})))
}

func TestDisabledOrUnsupported(t *testing.T) {
	env := session.Environ{"PS1": "$ ", "PROMPT": "$P$G", session.PromptBackupVar: "old"}
	st := session.Load(env)

	off := prompt.Manager{Enabled: false}
	assert.Empty(t, off.Activate(dialect(t, "bash"), env, st, "a"))
	assert.Equal(t, []shell.Op{shell.Unset(session.PromptBackupVar)}, off.Deactivate(dialect(t, "bash"), st))

	on := prompt.Manager{Enabled: true}
	for _, id := range []string{"fish", "powershell"} {
		assert.Empty(t, on.Activate(dialect(t, id), env, st, "a"), id)
		assert.Equal(t, []shell.Op{shell.Unset(session.PromptBackupVar)}, on.Deactivate(dialect(t, id), st), id)
	}

	noBackup := session.Load(session.Environ{"PS1": "$ "})
	assert.Empty(t, off.Deactivate(dialect(t, "bash"), noBackup))
	assert.Empty(t, on.Deactivate(dialect(t, "fish"), noBackup))
}

func TestDeactivate_DisabledClearsBackupOnly(t *testing.T) {
	on := prompt.Manager{Enabled: true}
	off := prompt.Manager{Enabled: false}
	bash := dialect(t, "bash")

	env := session.Environ{"PS1": "$ "}
	env = env.Apply(on.Activate(bash, env, session.Load(env), "a"))
	env = env.Apply(off.Deactivate(bash, session.Load(env)))

	assert.Equal(t, "(a) $ ", env["PS1"])
	_, ok := env.Lookup(session.PromptBackupVar)
	assert.False(t, ok)

	env["PS1"] = "new> "
	env = env.Apply(on.Activate(bash, env, session.Load(env), "b"))
	assert.Equal(t, "(b) new> ", env["PS1"])
}

func TestActivate_UsesDialectPromptVar(t *testing.T) {
	m := prompt.Manager{Enabled: true}
	env := session.Environ{"prompt": "% "}
	ops := m.Activate(dialect(t, "tcsh"), env, session.Load(env), "x")
	require.Len(t, ops, 2)
	assert.Equal(t, shell.SetPrompt("prompt", "(x) % "), ops[1])
}
