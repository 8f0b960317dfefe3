package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/doctor"
	"github.com/hbjs97/condact/internal/setup"
	"github.com/hbjs97/condact/internal/shell"
)

// errDoctorFailed는 FAIL 진단이 하나라도 있을 때 반환된다.
var errDoctorFailed = errors.New("doctor: 실패한 진단 항목이 있습니다")

func (a *App) newDoctorCmd() *cobra.Command {
	var shellID string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "설정, 환경 디렉토리, 셸 통합, 세션 상태를 진단한다",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd, shellID)
		},
	}
	cmd.Flags().StringVar(&shellID, "shell", "", "진단할 셸 dialect (기본값: 설정의 shell)")
	return cmd
}

func (a *App) runDoctor(cmd *cobra.Command, shellID string) error {
	cfg, cfgErr := config.Load(a.CfgPath)
	if shellID == "" && cfg != nil {
		shellID = cfg.Shell
	}

	in := doctor.Input{
		ConfigPath: a.CfgPath,
		Config:     cfg,
		ConfigErr:  cfgErr,
		Environ:    a.environ(),
	}
	if shellID != "" {
		d, err := shell.Lookup(shellID)
		if err != nil {
			return err
		}
		in.Dialect = d
		in.RCPath = setup.ShellRCPath(d.ID)
	}

	results := doctor.RunAll(cmd.Context(), a.commander(), in)
	out := cmd.OutOrStdout()
	printDiagResults(out, results)
	if doctor.HasFailure(results) {
		return errDoctorFailed
	}
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  [%s] %s: %s\n", statusLabel(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusLabel(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return color.GreenString("OK")
	case doctor.StatusWarn:
		return color.YellowString("!!")
	case doctor.StatusFail:
		return color.RedString("FAIL")
	default:
		return "??"
	}
}
