package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/activator"
	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/hooks"
	"github.com/hbjs97/condact/internal/prompt"
	"github.com/hbjs97/condact/internal/registry"
	"github.com/hbjs97/condact/internal/resolver"
	"github.com/hbjs97/condact/internal/shell"
)

const activateLong = `ENV 환경을 현재 셸 세션에 활성화하는 스크립트를 stdout에 출력한다.
ENV를 생략하면 root 환경이다. 셸 통합(condact hook)을 통해 source 되어야 한다.`

func (a *App) newActivateCmd() *cobra.Command {
	var shellID string

	cmd := &cobra.Command{
		Use:   "activate [ENV]",
		Short: "환경을 활성화하는 스크립트를 출력한다",
		Long:  activateLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runActivate(cmd, shellID, args)
		},
	}
	cmd.Flags().StringVar(&shellID, "shell", "", "셸 dialect (기본값: 설정의 shell)")
	cmd.SetHelpFunc(usageToStderr)
	return cmd
}

func (a *App) runActivate(cmd *cobra.Command, shellID string, args []string) error {
	if err := activator.CheckActivateArgs(args); err != nil {
		if errors.Is(err, activator.ErrHelp) {
			usageToStderr(cmd, args)
			return nil
		}
		return err
	}
	ctl, d, err := a.newController(shellID)
	if err != nil {
		return err
	}
	plan, err := ctl.Activate(a.environ(), args)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), shell.Render(d, plan.Ops))
	a.record(plan.Env)
	return nil
}

// newController는 설정과 --shell 값으로 Controller를 만든다.
func (a *App) newController(shellID string) (*activator.Controller, *shell.Dialect, error) {
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return nil, nil, err
	}
	if shellID == "" {
		shellID = cfg.Shell
	}
	d, err := shell.Lookup(shellID)
	if err != nil {
		return nil, nil, err
	}
	log := a.logger()
	log.Debug("controller",
		zap.String("shell", d.ID),
		zap.String("root_prefix", cfg.RootPrefix),
		zap.Strings("envs_dirs", cfg.EnvsDirs))

	ctl := activator.New(
		d,
		resolver.New(cfg.RootPrefix, cfg.EnvsDirs),
		prompt.Manager{Enabled: cfg.IsChangePS1()},
		hooks.NewRunner(log),
		cfg.RootPrefix,
		log,
	)
	return ctl, d, nil
}

// record는 활성화한 환경을 레지스트리에 남긴다. 실패는 경고만 한다.
func (a *App) record(env *resolver.Environment) {
	if env == nil {
		return
	}
	path := a.registryPath()
	if path == "" {
		return
	}
	reg, err := registry.Load(path)
	if err != nil {
		a.logger().Warn("registry load failed", zap.String("path", path), zap.Error(err))
		return
	}
	reg.Record(env.Prefix, env.Name, a.now())
	if err := reg.Save(path); err != nil {
		a.logger().Warn("registry save failed", zap.String("path", path), zap.Error(err))
	}
}
