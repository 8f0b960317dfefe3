package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/activator"
	"github.com/hbjs97/condact/internal/cmdexec"
	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/logging"
	"github.com/hbjs97/condact/internal/registry"
	"github.com/hbjs97/condact/internal/session"
	"github.com/hbjs97/condact/internal/setup"
)

// App은 명령들이 공유하는 의존성이다. 비어 있는 필드는 실제 구현으로 채운다.
type App struct {
	Commander    cmdexec.Commander
	CfgPath      string
	RegistryPath string
	// Environ은 현재 세션의 환경 변수다. nil이면 os.Environ()을 쓴다.
	Environ session.Environ
	// Exe는 셸 통합 스니펫에 넣을 condact 경로다. 비어 있으면 os.Executable().
	Exe         string
	FormRunner  setup.FormRunner
	Interactive func() bool
	Now         func() time.Time

	verbose bool
	log     *zap.Logger
}

// NewRootCmd는 condact CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "condact",
		Short:         "conda 환경을 현재 셸 세션에 활성화/비활성화한다",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logging.New(cmd.ErrOrStderr(), a.verbose)
		},
	}

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = config.DefaultPath()
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로 ($CONDARC)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "상세 로그를 stderr에 출력")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &activator.UsageError{Msg: err.Error()}
	})

	cmd.AddCommand(
		a.newActivateCmd(),
		a.newDeactivateCmd(),
		a.newHookCmd(),
		a.newSetupCmd(),
		a.newEnvsCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

// Execute는 루트 명령을 실행하고 종료 코드를 반환한다.
// 에러는 접두어 없이 stderr에 그대로 쓰며, 실패 시 stdout에는 아무것도 쓰지 않는다.
func (a *App) Execute(args []string, stdout, stderr io.Writer) ExitCode {
	cmd := a.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
	}
	return MapExitCode(err)
}

func (a *App) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}

func (a *App) environ() session.Environ {
	if a.Environ != nil {
		return a.Environ
	}
	return session.FromList(os.Environ())
}

func (a *App) commander() cmdexec.Commander {
	if a.Commander == nil {
		return &cmdexec.RealCommander{}
	}
	return a.Commander
}

func (a *App) exe() string {
	if a.Exe != "" {
		return a.Exe
	}
	if p, err := os.Executable(); err == nil {
		return p
	}
	return "condact"
}

func (a *App) registryPath() string {
	if a.RegistryPath != "" {
		return a.RegistryPath
	}
	return registry.DefaultPath()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) formRunner() setup.FormRunner {
	if a.FormRunner != nil {
		return a.FormRunner
	}
	return &setup.HuhFormRunner{}
}

func (a *App) interactive() bool {
	if a.Interactive != nil {
		return a.Interactive()
	}
	return setup.IsInteractive()
}

// usageToStderr는 도움말을 stderr로 보낸다. activate/deactivate의 stdout은 eval 대상이다.
func usageToStderr(cmd *cobra.Command, _ []string) {
	w := cmd.ErrOrStderr()
	if cmd.Long != "" {
		fmt.Fprintln(w, cmd.Long)
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, cmd.UsageString())
}

// noArgs는 위치 인자를 거부한다. 사용법 오류로 분류되도록 UsageError로 감싼다.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &activator.UsageError{Msg: err.Error()}
	}
	return nil
}
