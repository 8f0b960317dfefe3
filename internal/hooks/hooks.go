// Package hooks는 환경별 activate/deactivate 스크립트를 찾아
// 현재 세션에서 source 하는 작업으로 바꾼다.
package hooks

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/shell"
)

// Phase는 hook이 실행되는 시점이다.
type Phase string

const (
	// PhaseActivate hook은 검색 경로와 프롬프트를 반영한 뒤 실행된다.
	PhaseActivate Phase = "activate"

	// PhaseDeactivate hook은 검색 경로와 프롬프트를 복원하기 전에 실행된다.
	PhaseDeactivate Phase = "deactivate"
)

// Hook은 phase 디렉토리에서 찾은 스크립트 하나다.
type Hook struct {
	Path  string
	Phase Phase
}

// Dir는 <prefix>/etc/conda/<phase>.d 경로를 반환한다.
func Dir(prefix string, phase Phase) string {
	return filepath.Join(prefix, "etc", "conda", string(phase)+".d")
}

// Runner는 환경의 hook 실행 계획을 세운다.
type Runner struct {
	Log *zap.Logger
}

// NewRunner는 Runner를 생성한다. log가 nil이면 no-op 로거를 쓴다.
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Log: log}
}

// Enumerate는 suffix로 끝나는 일반 파일을 사전순으로 나열한다.
// 디렉토리가 없으면 빈 목록이고, 읽을 수 없으면 경고를 남기고 빈 목록을 반환한다.
func (r *Runner) Enumerate(prefix string, phase Phase, suffix string) []Hook {
	dir := Dir(prefix, phase)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.Log.Warn("cannot read hook directory", zap.String("dir", dir), zap.Error(err))
		}
		return nil
	}

	var found []Hook
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			r.Log.Debug("skipping hook", zap.String("path", path))
			continue
		}
		found = append(found, Hook{Path: path, Phase: phase})
	}
	return found
}

// Plan은 hook마다 dialect 표기 경로의 Source 작업을 하나씩 만든다.
// 각 dialect의 source 템플릿이 실패한 스크립트를 무시하므로 hook 실패는 세션을 막지 않는다.
func (r *Runner) Plan(prefix string, phase Phase, d *shell.Dialect) []shell.Op {
	found := r.Enumerate(prefix, phase, d.HookSuffix)
	if len(found) == 0 {
		return nil
	}
	ops := make([]shell.Op, 0, len(found))
	for _, h := range found {
		r.Log.Debug("planning hook", zap.String("phase", string(phase)), zap.String("path", h.Path))
		ops = append(ops, shell.Source(d.PathTo(h.Path)))
	}
	return ops
}
