package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/registry"
	"github.com/hbjs97/condact/internal/resolver"
	"github.com/hbjs97/condact/internal/session"
)

func (a *App) newEnvsCmd() *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "envs",
		Short: "알려진 환경 목록을 출력한다 (* 는 활성 환경)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEnvs(cmd, prune)
		},
	}
	cmd.Flags().BoolVar(&prune, "prune", false, "더 이상 환경이 아닌 기록을 레지스트리에서 지운다")
	return cmd
}

func (a *App) runEnvs(cmd *cobra.Command, prune bool) error {
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return err
	}

	reg, err := registry.Load(a.registryPath())
	if err != nil {
		a.logger().Warn("registry load failed", zap.Error(err))
		reg = registry.New()
	}
	if prune {
		if n := reg.Prune(resolver.IsEnvironment); n > 0 {
			if err := reg.Save(a.registryPath()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "기록 %d개를 정리했습니다\n", n)
		}
	}
	known := reg.List(cfg.RootPrefix, cfg.EnvsDirs, resolver.IsEnvironment)
	active := activePrefix(a.environ(), cfg.RootPrefix)

	width := 0
	for _, k := range known {
		if len(k.Name) > width {
			width = len(k.Name)
		}
	}

	out := cmd.OutOrStdout()
	for _, k := range known {
		mark := " "
		if active != "" && samePath(k.Prefix, active) {
			mark = color.GreenString("*")
		}
		line := fmt.Sprintf("%-*s %s %s", width, k.Name, mark, k.Prefix)
		if !k.LastActivated.IsZero() {
			line += color.HiBlackString("  (%s)", k.LastActivated.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// activePrefix는 세션의 활성 환경 prefix를 반환한다. 비활성이면 빈 문자열이다.
func activePrefix(env session.Environ, rootPrefix string) string {
	st := session.Load(env)
	if !st.Active() {
		return ""
	}
	return st.ActivePrefix(rootPrefix)
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
