package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/shell"
)

// yamlTemplate는 CONDARC가 .condarc 같은 YAML 파일을 가리킬 때 쓰는 기본 설정이다.
// .toml 경로는 config.Save로 쓴다.
const yamlTemplate = `# condact configuration file

# root_prefix: ~/miniconda3
# envs_dirs:
#   - ~/miniconda3/envs
#   - ~/.conda/envs
changeps1: true
shell: %s
`

// Runner는 setup의 진입점이다.
type Runner struct {
	CfgPath     string
	Exe         string
	FormRunner  FormRunner
	Interactive bool
	Out         io.Writer
	Log         *zap.Logger
	RCPath      string // 테스트용. 비어있으면 ShellRCPath.
}

// Run은 설정 템플릿을 쓰고 RC 파일에 셸 통합을 설치한다.
// shellID가 비어 있으면 $SHELL에서 감지하고, 대화형이면 선택 UI를 띄운다.
// assumeYes이면 어떤 프롬프트도 띄우지 않는다.
func (r *Runner) Run(shellID string, assumeYes bool) (*Result, error) {
	ask := r.Interactive && !assumeYes && r.FormRunner != nil

	id, err := r.chooseShell(shellID, ask)
	if err != nil {
		return nil, err
	}
	d, err := shell.Lookup(id)
	if err != nil {
		return nil, err
	}
	res := &Result{Shell: d.ID}

	res.ConfigWritten, err = r.writeConfig(d.ID)
	if err != nil {
		return res, err
	}
	if res.ConfigWritten {
		fmt.Fprintf(r.out(), "설정 파일이 생성되었습니다: %s\n", r.CfgPath)
	}

	res.RCPath = r.RCPath
	if res.RCPath == "" {
		res.RCPath = ShellRCPath(d.ID)
	}
	if res.RCPath == "" {
		return res, fmt.Errorf("setup.Run: %s 의 RC 파일 경로를 알 수 없습니다", d.ID)
	}

	if ask {
		ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("%s 에 셸 통합을 추가할까요?", res.RCPath))
		if err != nil {
			return res, err
		}
		if !ok {
			fmt.Fprintln(r.out(), "셸 통합 설치를 건너뜁니다.")
			return res, nil
		}
	}

	res.HookInstalled, err = InstallShellHook(d, r.Exe, res.RCPath)
	if err != nil {
		return res, err
	}
	r.log().Debug("shell integration",
		zap.String("shell", d.ID),
		zap.String("rc", res.RCPath),
		zap.Bool("installed", res.HookInstalled))
	if res.HookInstalled {
		fmt.Fprintf(r.out(), "셸 통합이 설치되었습니다: %s\n", res.RCPath)
		fmt.Fprintln(r.out(), "새 셸을 열거나 RC 파일을 다시 source 하세요.")
	} else {
		fmt.Fprintf(r.out(), "셸 통합이 이미 설치되어 있습니다: %s\n", res.RCPath)
	}
	return res, nil
}

func (r *Runner) chooseShell(shellID string, ask bool) (string, error) {
	if shellID != "" {
		return shellID, nil
	}
	id := DetectShell()
	if ask {
		current := id
		if current == "" {
			current = "bash"
		}
		return r.FormRunner.RunShellSelect(shell.IDs(), current)
	}
	if id == "" {
		return "", fmt.Errorf("%w: $SHELL 에서 셸을 감지할 수 없습니다. --shell 로 지정하세요", shell.ErrUnknownDialect)
	}
	return id, nil
}

// writeConfig는 설정 파일이 없을 때만 템플릿을 쓴다.
func (r *Runner) writeConfig(id string) (bool, error) {
	if r.CfgPath == "" {
		return false, nil
	}
	_, err := os.Stat(r.CfgPath)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("setup.writeConfig: %w", err)
	}

	if strings.EqualFold(filepath.Ext(r.CfgPath), ".toml") {
		on := true
		if err := config.Save(r.CfgPath, &config.Config{ChangePS1: &on, Shell: id}); err != nil {
			return false, err
		}
		return true, nil
	}
	content := fmt.Sprintf(yamlTemplate, id)
	if err := os.MkdirAll(filepath.Dir(r.CfgPath), 0700); err != nil {
		return false, fmt.Errorf("setup.writeConfig: 디렉토리 생성 실패: %w", err)
	}
	if err := os.WriteFile(r.CfgPath, []byte(content), 0600); err != nil {
		return false, fmt.Errorf("setup.writeConfig: 설정 파일 생성 실패: %w", err)
	}
	return true, nil
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) log() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}
