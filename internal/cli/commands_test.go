package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/condact/internal/activator"
	"github.com/hbjs97/condact/internal/cli"
	"github.com/hbjs97/condact/internal/registry"
	"github.com/hbjs97/condact/internal/session"
	"github.com/hbjs97/condact/internal/shell"
	"github.com/hbjs97/condact/internal/testutil"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type harness struct {
	app    *cli.App
	fake   *testutil.FakeCommander
	home   string
	root   string
	envs   string
	py311  string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// newHarness는 root 환경, envs/py311 환경, 설정 파일을 가진 App을 만든다.
func newHarness(t *testing.T) *harness {
	t.Helper()

	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{"CONDARC", "CONDACT_ROOT_PREFIX", "CONDACT_ENVS_DIRS", "CONDACT_CHANGEPS1", "CONDACT_SHELL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	root := testutil.TempEnv(t, "", "conda")
	envs := filepath.Join(root, "envs")
	py311 := testutil.TempEnv(t, envs, "py311")
	testutil.TempPlainDir(t, envs, "junk")

	cfgPath := testutil.TempConfigFile(t, fmt.Sprintf(`
root_prefix = %q
envs_dirs = [%q]
shell = "bash"
`, root, envs))

	fake := testutil.NewFakeCommander()
	h := &harness{
		fake:  fake,
		home:  home,
		root:  root,
		envs:  envs,
		py311: py311,
	}
	h.app = &cli.App{
		Commander:    fake,
		CfgPath:      cfgPath,
		RegistryPath: filepath.Join(t.TempDir(), "environments.json"),
		Environ: session.Environ{
			session.PathVar:  "/usr/bin:/bin",
			"PS1":            "$ ",
			shell.SourcedVar: "1",
		},
		Exe:         "/usr/local/bin/condact",
		Interactive: func() bool { return false },
		Now:         func() time.Time { return fixedNow },
	}
	return h
}

func (h *harness) run(args ...string) cli.ExitCode {
	h.stdout.Reset()
	h.stderr.Reset()
	return h.app.Execute(args, &h.stdout, &h.stderr)
}

// active는 py311이 활성화된 세션 환경이다.
func (h *harness) active() session.Environ {
	return session.Environ{
		session.PathVar:         h.py311 + "/bin:/usr/bin:/bin",
		"PS1":                   "(py311) $ ",
		shell.SourcedVar:        "1",
		session.DefaultEnvVar:   h.py311,
		session.PrefixVar:       h.py311,
		session.PathBackupVar:   "/usr/bin:/bin",
		session.PromptBackupVar: "$ ",
	}
}

// --- activate ---

func TestActivateCmd_Success(t *testing.T) {
	h := newHarness(t)

	code := h.run("activate", "py311")
	require.Equal(t, cli.ExitSuccess, code, h.stderr.String())
	assert.Empty(t, h.stderr.String())

	out := h.stdout.String()
	assert.Contains(t, out, fmt.Sprintf("export PATH='%s/bin:/usr/bin:/bin'\n", h.py311))
	assert.Contains(t, out, "PS1='(py311) $ '\n")
	assert.Contains(t, out, fmt.Sprintf("export CONDA_DEFAULT_ENV='%s'\n", h.py311))
	assert.Contains(t, out, "export CONDA_PATH_BACKUP='/usr/bin:/bin'\n")

	reg, err := registry.Load(h.app.RegistryPath)
	require.NoError(t, err)
	assert.Equal(t, registry.Entry{Name: "py311", LastActivated: "2026-10-19T09:30:00Z"}, reg.Entries[h.py311])
}

func TestActivateCmd_Root(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, cli.ExitSuccess, h.run("activate"))
	assert.Contains(t, h.stdout.String(), "export CONDA_DEFAULT_ENV='root'\n")
	assert.Contains(t, h.stdout.String(), "PS1='(root) $ '\n")
}

func TestActivateCmd_ShellFlag(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, cli.ExitSuccess, h.run("activate", "--shell", "tcsh", "py311"))
	assert.Contains(t, h.stdout.String(), "setenv CONDA_DEFAULT_ENV")
	assert.NotContains(t, h.stdout.String(), "export ")
}

func TestActivateCmd_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		environ func(h *harness) session.Environ
		code    cli.ExitCode
		stderr  func(h *harness) string
	}{
		{
			name:   "two args",
			args:   []string{"activate", "a", "b"},
			code:   cli.ExitUsage,
			stderr: func(*harness) string { return activator.MsgActivateArgs + "\n" },
		},
		{
			name:   "not found",
			args:   []string{"activate", "missing"},
			code:   cli.ExitNotFound,
			stderr: func(*harness) string { return "could not find conda environment: missing\n" },
		},
		{
			name:   "not an environment",
			args:   []string{"activate", "junk"},
			code:   cli.ExitNotAnEnvironment,
			stderr: func(*harness) string { return "junk is not a conda environment\n" },
		},
		{
			name: "not sourced",
			args: []string{"activate", "py311"},
			environ: func(*harness) session.Environ {
				return session.Environ{session.PathVar: "/usr/bin"}
			},
			code:   cli.ExitInvocation,
			stderr: func(*harness) string { return "activate must be sourced\n" },
		},
		{
			name: "not found while active keeps session",
			args: []string{"activate", "missing"},
			environ: func(h *harness) session.Environ {
				return h.active()
			},
			code:   cli.ExitNotFound,
			stderr: func(*harness) string { return "could not find conda environment: missing\n" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.environ != nil {
				h.app.Environ = tt.environ(h)
			}

			assert.Equal(t, tt.code, h.run(tt.args...))
			assert.Empty(t, h.stdout.String())
			assert.Equal(t, tt.stderr(h), h.stderr.String())

			_, err := os.Stat(h.app.RegistryPath)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestActivateCmd_UnknownFlag(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, cli.ExitUsage, h.run("activate", "--frobnicate"))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "unknown flag: --frobnicate")
}

func TestActivateCmd_UnknownShell(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, cli.ExitUsage, h.run("activate", "--shell", "nushell"))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "nushell")
}

func TestActivateCmd_Help(t *testing.T) {
	h := newHarness(t)
	h.app.Environ = h.active()

	assert.Equal(t, cli.ExitSuccess, h.run("activate", "--help"))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "activate [ENV]")

	assert.Equal(t, cli.ExitSuccess, h.run("activate", "--", "-h"))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "activate [ENV]")
}

func TestActivateCmd_BadConfig(t *testing.T) {
	h := newHarness(t)
	h.app.CfgPath = testutil.TempConfigFile(t, "root_prefix = [unterminated")

	assert.Equal(t, cli.ExitConfigError, h.run("activate", "py311"))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "invalid configuration")
}

func TestArgsCheckedBeforeConfig(t *testing.T) {
	h := newHarness(t)
	h.app.CfgPath = testutil.TempConfigFile(t, "root_prefix = [unterminated")

	assert.Equal(t, cli.ExitUsage, h.run("activate", "a", "b"))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "activate only accepts a single argument")
	assert.NotContains(t, h.stderr.String(), "invalid configuration")

	assert.Equal(t, cli.ExitUsage, h.run("deactivate", "x"))
	assert.Contains(t, h.stderr.String(), "deactivate does not accept arguments")

	assert.Equal(t, cli.ExitSuccess, h.run("activate", "--", "-h"))
	assert.Contains(t, h.stderr.String(), "activate [ENV]")

	assert.Equal(t, cli.ExitUsage, h.run("activate", "--shell", "nushell", "a", "b"))
	assert.Contains(t, h.stderr.String(), "activate only accepts a single argument")
	assert.NotContains(t, h.stderr.String(), "nushell")
}

func TestActivateCmd_ChangePromptDisabled(t *testing.T) {
	h := newHarness(t)
	t.Setenv("CONDACT_CHANGEPS1", "false")

	require.Equal(t, cli.ExitSuccess, h.run("activate", "py311"))
	assert.NotContains(t, h.stdout.String(), "PS1")
}

func TestActivateCmd_VerboseLogsToStderr(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, cli.ExitSuccess, h.run("--verbose", "activate", "py311"))
	assert.Contains(t, h.stderr.String(), "activation planned")
	assert.NotContains(t, h.stdout.String(), "DEBUG")
}

// --- deactivate ---

func TestDeactivateCmd_Active(t *testing.T) {
	h := newHarness(t)
	h.app.Environ = h.active()

	require.Equal(t, cli.ExitSuccess, h.run("deactivate"))
	out := h.stdout.String()
	assert.Contains(t, out, "export PATH='/usr/bin:/bin'\n")
	assert.Contains(t, out, "PS1='$ '\n")
	assert.Contains(t, out, "unset CONDA_DEFAULT_ENV\n")
	assert.Contains(t, out, "unset CONDA_PATH_BACKUP\n")
	assert.Empty(t, h.stderr.String())
}

func TestDeactivateCmd_Inactive(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, cli.ExitSuccess, h.run("deactivate"))
	assert.Empty(t, h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestDeactivateCmd_Failures(t *testing.T) {
	h := newHarness(t)
	h.app.Environ = h.active()

	assert.Equal(t, cli.ExitUsage, h.run("deactivate", "py311"))
	assert.Empty(t, h.stdout.String())
	assert.Equal(t, activator.MsgDeactivateArgs+"\n", h.stderr.String())

	assert.Equal(t, cli.ExitUsage, h.run("deactivate", "--hold"))
	assert.Empty(t, h.stdout.String())
	assert.Equal(t, activator.MsgHoldUnsupported+"\n", h.stderr.String())

	h.app.Environ = session.Environ{session.DefaultEnvVar: h.py311}
	assert.Equal(t, cli.ExitInvocation, h.run("deactivate"))
	assert.Equal(t, "deactivate must be sourced\n", h.stderr.String())
}

func TestDeactivateCmd_BatchHold(t *testing.T) {
	h := newHarness(t)
	h.app.Environ = session.Environ{
		session.PathVar:       h.py311 + `\Library\bin;` + h.py311 + `\Scripts;C:\Windows`,
		shell.SourcedVar:      "1",
		session.DefaultEnvVar: h.py311,
		session.PrefixVar:     h.py311,
		session.PathBackupVar: `C:\Windows`,
	}

	require.Equal(t, cli.ExitSuccess, h.run("deactivate", "--shell", "cmd.exe", "--hold"))
	assert.Contains(t, h.stdout.String(), `@SET "PATH=`+session.PlaceholderToken+`;C:\Windows"`)
}

// --- hook / setup ---

func TestHookCmd(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, cli.ExitSuccess, h.run("hook", "--shell", "zsh"))
	assert.Contains(t, h.stdout.String(), shell.IntegrationMarker+" (zsh)")
	assert.Contains(t, h.stdout.String(), "/usr/local/bin/condact")

	require.Equal(t, cli.ExitSuccess, h.run("hook"))
	assert.Contains(t, h.stdout.String(), shell.IntegrationMarker+" (bash)")

	assert.Equal(t, cli.ExitUsage, h.run("hook", "--shell", "nushell"))
	assert.Empty(t, h.stdout.String())
}

func TestSetupCmd_WritesConfigAndHook(t *testing.T) {
	h := newHarness(t)
	h.app.CfgPath = filepath.Join(t.TempDir(), "condact", "config.toml")

	require.Equal(t, cli.ExitSuccess, h.run("setup", "--shell", "zsh", "--yes"), h.stderr.String())

	cfg, err := os.ReadFile(h.app.CfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(cfg), `shell = "zsh"`)

	rc, err := os.ReadFile(filepath.Join(h.home, ".zshrc"))
	require.NoError(t, err)
	assert.Contains(t, string(rc), shell.IntegrationMarker)
	assert.Contains(t, h.stdout.String(), "condact doctor")
}

func TestSetupCmd_RejectsArgs(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, cli.ExitUsage, h.run("setup", "extra"))
	assert.Empty(t, h.stdout.String())
}

// --- envs ---

func TestEnvsCmd(t *testing.T) {
	h := newHarness(t)
	h.app.Environ = h.active()

	require.Equal(t, cli.ExitSuccess, h.run("envs"))
	out := h.stdout.String()
	assert.Contains(t, out, "py311 * "+h.py311)
	assert.Contains(t, out, "root    "+h.root)
	assert.NotContains(t, out, "junk")
}

func TestEnvsCmd_ShowsLastActivated(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, cli.ExitSuccess, h.run("activate", "py311"))

	require.Equal(t, cli.ExitSuccess, h.run("envs"))
	assert.Contains(t, h.stdout.String(), fixedNow.Local().Format("2006-01-02 15:04"))
}

// --- doctor ---

func TestDoctorCmd_OK(t *testing.T) {
	h := newHarness(t)
	h.fake.Install("bash", "/bin/bash")
	h.fake.DefaultResponse = &testutil.Response{}

	assert.Equal(t, cli.ExitSuccess, h.run("doctor"))
	out := h.stdout.String()
	assert.Contains(t, out, "[OK] config: "+h.app.CfgPath)
	assert.Contains(t, out, "[OK] root_prefix: "+h.root)
	assert.Contains(t, out, "[OK] shell bash: /bin/bash")
	assert.Contains(t, out, "[!!] integration")
	assert.Contains(t, out, "Fix: condact setup --shell bash")
}

func TestDoctorCmd_InconsistentSession(t *testing.T) {
	h := newHarness(t)
	h.fake.Install("bash", "/bin/bash")
	h.fake.DefaultResponse = &testutil.Response{}
	h.app.Environ = session.Environ{session.DefaultEnvVar: h.py311}

	assert.Equal(t, cli.ExitGeneral, h.run("doctor"))
	assert.Contains(t, h.stdout.String(), "[FAIL] session")
	assert.Equal(t, "doctor: 실패한 진단 항목이 있습니다\n", h.stderr.String())
}

// --- exit codes ---

func TestMapExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want cli.ExitCode
	}{
		{"nil", nil, cli.ExitSuccess},
		{"usage", &activator.UsageError{Msg: "x"}, cli.ExitUsage},
		{"help", activator.ErrHelp, cli.ExitUsage},
		{"unknown dialect", fmt.Errorf("wrap: %w", cli.ErrUnknownDialect), cli.ExitUsage},
		{"invocation", &activator.InvocationError{Op: "activate"}, cli.ExitInvocation},
		{"not found", fmt.Errorf("wrap: %w", cli.ErrEnvironmentNotFound), cli.ExitNotFound},
		{"not env", cli.ErrNotAnEnvironment, cli.ExitNotAnEnvironment},
		{"config", fmt.Errorf("%w: bad", cli.ErrConfig), cli.ExitConfigError},
		{"other", fmt.Errorf("boom"), cli.ExitGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.MapExitCode(tt.err))
		})
	}
}

func TestEnvsCmd_Prune(t *testing.T) {
	h := newHarness(t)
	reg := registry.New()
	reg.Record(h.py311, "py311", fixedNow)
	reg.Record(filepath.Join(h.envs, "deleted"), "deleted", fixedNow)
	require.NoError(t, reg.Save(h.app.RegistryPath))

	require.Equal(t, cli.ExitSuccess, h.run("envs", "--prune"))
	assert.Contains(t, h.stderr.String(), "1개")

	loaded, err := registry.Load(h.app.RegistryPath)
	require.NoError(t, err)
	assert.Contains(t, loaded.Entries, h.py311)
	assert.NotContains(t, loaded.Entries, filepath.Join(h.envs, "deleted"))
}
