package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/shell"
)

func (a *App) newHookCmd() *cobra.Command {
	var shellID string

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "RC 파일에서 eval 할 셸 통합 스니펫을 출력한다",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.hookDialect(shellID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), shell.HookSnippet(d, a.exe()))
			return nil
		},
	}
	cmd.Flags().StringVar(&shellID, "shell", "", "셸 dialect (기본값: 설정의 shell)")
	return cmd
}

func (a *App) hookDialect(shellID string) (*shell.Dialect, error) {
	if shellID == "" {
		cfg, err := config.Load(a.CfgPath)
		if err != nil {
			return nil, err
		}
		shellID = cfg.Shell
	}
	return shell.Lookup(shellID)
}
