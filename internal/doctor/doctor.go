package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/condact/internal/cmdexec"
	"github.com/hbjs97/condact/internal/config"
	"github.com/hbjs97/condact/internal/resolver"
	"github.com/hbjs97/condact/internal/searchpath"
	"github.com/hbjs97/condact/internal/session"
	"github.com/hbjs97/condact/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Input은 RunAll에 필요한 값 묶음이다.
type Input struct {
	ConfigPath string
	Config     *config.Config
	ConfigErr  error
	Dialect    *shell.Dialect
	RCPath     string
	Environ    session.Environ
}

// CheckConfig는 설정 파일 로드 결과와 권한을 확인한다.
func CheckConfig(path string, cfg *config.Config, loadErr error) DiagResult {
	if loadErr != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusFail,
			Message: loadErr.Error(),
			Fix:     fmt.Sprintf("%s 파일 확인", path),
		}
	}
	if cfg == nil || cfg.Path == "" {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: fmt.Sprintf("설정 파일 없음 (%s), 기본값 사용", path),
			Fix:     "condact setup 실행",
		}
	}
	if err := config.ValidateFilePermissions(cfg.Path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: err.Error(),
			Fix:     fmt.Sprintf("chmod 600 %s", cfg.Path),
		}
	}
	return DiagResult{Name: "config", Status: StatusOK, Message: cfg.Path}
}

// CheckRootPrefix는 root prefix가 유효한 환경인지 확인한다.
func CheckRootPrefix(root string) DiagResult {
	if resolver.IsEnvironment(root) {
		return DiagResult{Name: "root_prefix", Status: StatusOK, Message: root}
	}
	return DiagResult{
		Name:    "root_prefix",
		Status:  StatusFail,
		Message: fmt.Sprintf("%s 에 %s 없음", root, resolver.MarkerDir),
		Fix:     "설정의 root_prefix 또는 CONDACT_ROOT_PREFIX 확인",
	}
}

// CheckEnvsDirs는 각 envs 디렉토리의 존재와 환경 개수를 확인한다.
func CheckEnvsDirs(dirs []string) []DiagResult {
	var results []DiagResult
	for _, dir := range dirs {
		name := "envs_dir " + dir
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusWarn,
				Message: "디렉토리 없음",
			})
			continue
		}
		if err != nil {
			results = append(results, DiagResult{
				Name:    name,
				Status:  StatusFail,
				Message: err.Error(),
				Fix:     fmt.Sprintf("%s 권한 확인", dir),
			})
			continue
		}
		n := 0
		for _, e := range entries {
			if e.IsDir() && resolver.IsEnvironment(filepath.Join(dir, e.Name())) {
				n++
			}
		}
		results = append(results, DiagResult{
			Name:    name,
			Status:  StatusOK,
			Message: fmt.Sprintf("환경 %d개", n),
		})
	}
	return results
}

// CheckShell은 dialect의 셸 실행 파일이 있고 실행되는지 확인한다.
func CheckShell(ctx context.Context, cmd cmdexec.Commander, d *shell.Dialect) DiagResult {
	name := "shell " + d.ID
	path, err := cmd.LookPath(d.Exe)
	if err != nil {
		return DiagResult{
			Name:    name,
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 없음", d.Exe),
			Fix:     fmt.Sprintf("%s 설치 또는 --shell 변경", d.Exe),
		}
	}
	if out, err := cmd.Run(ctx, path, d.ProbeArgs...); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return DiagResult{
			Name:    name,
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 실행 실패: %s", path, msg),
		}
	}
	return DiagResult{Name: name, Status: StatusOK, Message: path}
}

// CheckIntegration은 rc 파일에 셸 통합이 설치되어 있는지 확인한다.
func CheckIntegration(d *shell.Dialect, rcPath string) DiagResult {
	fix := fmt.Sprintf("condact setup --shell %s", d.ID)
	data, err := os.ReadFile(rcPath)
	if err != nil {
		return DiagResult{
			Name:    "integration",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 읽기 실패", rcPath),
			Fix:     fix,
		}
	}
	if !strings.Contains(string(data), shell.IntegrationMarker) {
		return DiagResult{
			Name:    "integration",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 에 셸 통합 없음", rcPath),
			Fix:     fix,
		}
	}
	return DiagResult{Name: "integration", Status: StatusOK, Message: rcPath}
}

// CheckSession은 현재 세션의 활성화 상태 불변식을 확인한다.
func CheckSession(env session.Environ) DiagResult {
	st := session.Load(env)
	if err := st.Check(); err != nil {
		return DiagResult{
			Name:    "session",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     "새 셸을 열거나 " + session.DefaultEnvVar + " 를 unset",
		}
	}
	if !st.Active() {
		return DiagResult{Name: "session", Status: StatusOK, Message: "활성 환경 없음"}
	}
	return DiagResult{Name: "session", Status: StatusOK, Message: "활성 환경: " + st.DefaultEnv}
}

// CheckSearchPath는 활성 환경의 bin 디렉토리가 PATH에 남아 있는지 확인한다.
func CheckSearchPath(env session.Environ, d *shell.Dialect) DiagResult {
	st := session.Load(env)
	if !st.Active() || st.Prefix == "" {
		return DiagResult{Name: "search_path", Status: StatusOK, Message: "확인할 활성 환경 없음"}
	}
	rw := searchpath.Rewriter{Sep: d.PathSep}
	path := d.NormalizeSearchPath(env.Get(session.PathVar))
	for _, dir := range d.BinDirs(st.Prefix) {
		if !rw.Contains(path, dir) {
			return DiagResult{
				Name:    "search_path",
				Status:  StatusWarn,
				Message: fmt.Sprintf("%s 에 %s 없음", session.PathVar, dir),
				Fix:     "condact activate 다시 실행",
			}
		}
	}
	return DiagResult{Name: "search_path", Status: StatusOK, Message: st.Prefix}
}

// RunAll은 모든 진단을 실행한다. 설정 로드에 실패하면 설정에 의존하는 진단은 건너뛴다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, in Input) []DiagResult {
	results := []DiagResult{CheckConfig(in.ConfigPath, in.Config, in.ConfigErr)}
	if in.Config != nil {
		results = append(results, CheckRootPrefix(in.Config.RootPrefix))
		results = append(results, CheckEnvsDirs(in.Config.EnvsDirs)...)
	}
	if in.Dialect != nil {
		results = append(results, CheckShell(ctx, cmd, in.Dialect))
		if in.RCPath != "" {
			results = append(results, CheckIntegration(in.Dialect, in.RCPath))
		}
	}
	results = append(results, CheckSession(in.Environ))
	if in.Dialect != nil {
		results = append(results, CheckSearchPath(in.Environ, in.Dialect))
	}
	return results
}

// HasFailure는 FAIL 결과가 있는지 보고한다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
