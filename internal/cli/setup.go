package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/condact/internal/setup"
)

func (a *App) newSetupCmd() *cobra.Command {
	var shellID string
	var yes bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "설정 파일 템플릿을 만들고 RC 파일에 셸 통합을 설치한다",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &setup.Runner{
				CfgPath:     a.CfgPath,
				Exe:         a.exe(),
				FormRunner:  a.formRunner(),
				Interactive: a.interactive(),
				Out:         cmd.OutOrStdout(),
				Log:         a.logger(),
			}
			if _, err := r.Run(shellID, yes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "condact doctor 로 환경을 확인하세요.")
			return nil
		},
	}
	cmd.Flags().StringVar(&shellID, "shell", "", "셸 dialect (기본값: $SHELL 에서 감지)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "프롬프트 없이 진행")
	return cmd
}
