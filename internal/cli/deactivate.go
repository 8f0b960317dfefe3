package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/condact/internal/activator"
	"github.com/hbjs97/condact/internal/shell"
)

const deactivateLong = `활성 환경을 해제하고 PATH와 프롬프트를 복원하는 스크립트를 stdout에 출력한다.
활성 환경이 없으면 아무것도 출력하지 않는다. 셸 통합을 통해 source 되어야 한다.`

func (a *App) newDeactivateCmd() *cobra.Command {
	var shellID string
	var hold bool

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "활성 환경을 해제하는 스크립트를 출력한다",
		Long:  deactivateLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeactivate(cmd, shellID, hold, args)
		},
	}
	cmd.Flags().StringVar(&shellID, "shell", "", "셸 dialect (기본값: 설정의 shell)")
	cmd.Flags().BoolVar(&hold, "hold", false, "관리 구간을 placeholder로 남긴다 (cmd.exe 전용)")
	cmd.SetHelpFunc(usageToStderr)
	return cmd
}

func (a *App) runDeactivate(cmd *cobra.Command, shellID string, hold bool, args []string) error {
	if err := activator.CheckDeactivateArgs(args); err != nil {
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
	plan, err := ctl.Deactivate(a.environ(), args, hold)
	if err != nil {
		return err
	}
	if !plan.Empty() {
		fmt.Fprint(cmd.OutOrStdout(), shell.Render(d, plan.Ops))
	}
	return nil
}
