// Package activator는 Inactive/Active(env) 상태 기계를 구현한다.
// 모든 검증이 끝난 뒤에만 세션 변경 ops를 만들므로 실패한 호출은 아무것도 바꾸지 않는다.
package activator

import (
	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/hooks"
	"github.com/hbjs97/condact/internal/prompt"
	"github.com/hbjs97/condact/internal/resolver"
	"github.com/hbjs97/condact/internal/searchpath"
	"github.com/hbjs97/condact/internal/session"
	"github.com/hbjs97/condact/internal/shell"
)

// EnvResolver는 ENV 인자를 환경으로 해석한다.
type EnvResolver interface {
	Resolve(arg string, d *shell.Dialect) (*resolver.Environment, error)
}

// Plan은 셸이 순서대로 평가할 ops다. Env는 활성화된 환경이며 비활성화에서는 nil이다.
type Plan struct {
	Ops []shell.Op
	Env *resolver.Environment
}

// Empty는 세션을 바꾸지 않는 계획인지 보고한다.
func (p *Plan) Empty() bool { return len(p.Ops) == 0 }

// Controller는 하나의 dialect에 대해 activate/deactivate 계획을 세운다.
type Controller struct {
	dialect    *shell.Dialect
	resolver   EnvResolver
	prompt     prompt.Manager
	hooks      *hooks.Runner
	rootPrefix string
	log        *zap.Logger
}

// New는 새 Controller를 생성한다. rootPrefix는 네이티브 표기다.
func New(d *shell.Dialect, r EnvResolver, pm prompt.Manager, h *hooks.Runner, rootPrefix string, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if h == nil {
		h = hooks.NewRunner(log)
	}
	return &Controller{
		dialect:    d,
		resolver:   r,
		prompt:     pm,
		hooks:      h,
		rootPrefix: rootPrefix,
		log:        log,
	}
}

func (c *Controller) rewriter() searchpath.Rewriter {
	rw := searchpath.Rewriter{Sep: c.dialect.PathSep}
	if c.dialect.Batch {
		rw.Placeholder = session.PlaceholderToken
	}
	return rw
}

// Activate는 args[0] 환경(없으면 base)으로 전환하는 계획을 만든다.
// 이미 활성 환경이 있으면 쌓지 않고 교체한다.
func (c *Controller) Activate(environ session.Environ, args []string) (*Plan, error) {
	if err := CheckActivateArgs(args); err != nil {
		return nil, err
	}
	if environ.Get(shell.SourcedVar) == "" {
		return nil, &InvocationError{Op: "activate"}
	}

	var arg string
	if len(args) == 1 {
		arg = args[0]
	}
	env, err := c.resolver.Resolve(arg, c.dialect)
	if err != nil {
		return nil, err
	}

	d := c.dialect
	rw := c.rewriter()
	st := c.loadState(environ)
	current := d.NormalizeSearchPath(environ.Get(session.PathVar))
	rootPrefix := d.PathTo(c.rootPrefix)

	var ops []shell.Op
	var removed []string
	switch {
	case st.Active():
		prev := st.ActivePrefix(rootPrefix)
		removed = d.BinDirs(prev)
		ops = append(ops, c.hooks.Plan(d.PathFrom(prev), hooks.PhaseDeactivate, d)...)
		c.log.Debug("replacing active environment", zap.String("previous", prev))
	case d.Batch:
		removed = []string{d.Auxiliary(rootPrefix)}
	}

	backup, hasBackup := st.PathBackup, st.HasPathBackup
	if !hasBackup {
		backup = rw.Deactivate(current, removedIfActive(st, removed), "", false)
		hasBackup = true
	}

	prefix := d.PathTo(env.Prefix)
	next := rw.Activate(current, removed, d.BinDirs(prefix))
	ops = append(ops, shell.SetPath(session.PathVar, next))
	ops = append(ops, c.prompt.Activate(d, environ, st, env.Name)...)

	marker := prefix
	if env.Base {
		marker = session.BaseMarker
	}
	ops = append(ops, session.Commit(session.State{
		DefaultEnv:    marker,
		Prefix:        prefix,
		PathBackup:    backup,
		HasPathBackup: hasBackup,
	})...)
	ops = append(ops, c.hooks.Plan(env.Prefix, hooks.PhaseActivate, d)...)

	c.log.Debug("activation planned",
		zap.String("env", env.Name),
		zap.String("prefix", env.Prefix),
		zap.Int("ops", len(ops)))
	return &Plan{Ops: ops, Env: env}, nil
}

// removedIfActive는 백업 없이 활성 상태인 세션에서 백업을 재구성할 때 지울 항목이다.
// 처음 활성화할 때는 현재 PATH가 곧 백업이다.
func removedIfActive(st session.State, removed []string) []string {
	if st.Active() {
		return removed
	}
	return nil
}

// Deactivate는 활성 환경을 해제하는 계획을 만든다. 활성 환경이 없으면 빈 계획이다.
// hold는 cmd.exe에서 관리 구간을 placeholder 토큰으로 남긴다.
func (c *Controller) Deactivate(environ session.Environ, args []string, hold bool) (*Plan, error) {
	if err := CheckDeactivateArgs(args); err != nil {
		return nil, err
	}
	if hold && !c.dialect.Batch {
		return nil, &UsageError{Msg: MsgHoldUnsupported}
	}
	if environ.Get(shell.SourcedVar) == "" {
		return nil, &InvocationError{Op: "deactivate"}
	}

	st := c.loadState(environ)
	if !st.Active() {
		c.log.Debug("no active environment")
		return &Plan{}, nil
	}

	d := c.dialect
	rw := c.rewriter()
	prefix := st.ActivePrefix(d.PathTo(c.rootPrefix))
	removed := d.BinDirs(prefix)
	current := d.NormalizeSearchPath(environ.Get(session.PathVar))

	ops := c.hooks.Plan(d.PathFrom(prefix), hooks.PhaseDeactivate, d)

	var next string
	if hold {
		next = rw.Hold(current, removed)
	} else {
		next = rw.Deactivate(current, removed, st.PathBackup, st.HasPathBackup)
	}
	ops = append(ops, shell.SetPath(session.PathVar, next))
	ops = append(ops, c.prompt.Deactivate(d, st)...)
	ops = append(ops, session.Clear()...)

	c.log.Debug("deactivation planned", zap.String("prefix", prefix), zap.Bool("hold", hold))
	return &Plan{Ops: ops}, nil
}

// loadState는 세션 변수를 읽고 경로 값을 dialect 표기로 맞춘다.
// MSYS/Cygwin에서 네이티브 Windows 프로그램을 거친 값은 Windows 표기로 남아 있을 수 있다.
func (c *Controller) loadState(environ session.Environ) session.State {
	d := c.dialect
	st := session.Load(environ)
	st.Prefix = d.NormalizePath(st.Prefix)
	if st.DefaultEnv != session.BaseMarker {
		st.DefaultEnv = d.NormalizePath(st.DefaultEnv)
	}
	if st.HasPathBackup {
		st.PathBackup = d.NormalizeSearchPath(st.PathBackup)
	}
	return st
}

// CheckActivateArgs는 설정이나 dialect를 보기 전에 activate 인자를 검사한다.
// 도움말 요청이면 ErrHelp, 인자가 둘 이상이면 UsageError다.
func CheckActivateArgs(args []string) error {
	if wantsHelp(args) {
		return ErrHelp
	}
	if len(args) > 1 {
		return &UsageError{Msg: MsgActivateArgs}
	}
	return nil
}

// CheckDeactivateArgs는 deactivate 인자를 검사한다.
func CheckDeactivateArgs(args []string) error {
	if wantsHelp(args) {
		return ErrHelp
	}
	if len(args) > 0 {
		return &UsageError{Msg: MsgDeactivateArgs}
	}
	return nil
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}
