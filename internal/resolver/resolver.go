package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/hbjs97/condact/internal/shell"
)

// BaseKeyword는 base 환경을 가리키는 예약어다.
const BaseKeyword = "root"

// MarkerDir는 유효한 환경 디렉토리가 반드시 가져야 하는 하위 디렉토리다.
const MarkerDir = "conda-meta"

// ErrEnvironmentNotFound는 후보 디렉토리가 존재하지 않을 때 반환된다.
var ErrEnvironmentNotFound = errors.New("could not find conda environment")

// ErrNotAnEnvironment는 디렉토리는 있지만 MarkerDir가 없을 때 반환된다.
var ErrNotAnEnvironment = errors.New("not a conda environment")

// ResolveError는 사용자가 넘긴 인자를 담은 해석 실패다.
// Error()는 stderr에 그대로 출력되는 고정 문구를 만든다.
type ResolveError struct {
	Arg string
	Err error
}

func (e *ResolveError) Error() string {
	if errors.Is(e.Err, ErrNotAnEnvironment) {
		return e.Arg + " is not a conda environment"
	}
	return "could not find conda environment: " + e.Arg
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Environment는 해석된 환경이다.
type Environment struct {
	// Prefix는 네이티브 표기의 절대 경로다.
	Prefix string
	// Name은 프롬프트에 쓰는 표시 이름이다.
	Name string
	// Base는 root prefix 자체인지 나타낸다.
	Base bool
}

// Resolver는 ENV 인자를 환경 디렉토리로 해석한다.
type Resolver struct {
	RootPrefix string
	EnvsDirs   []string
}

// New는 새 Resolver를 생성한다.
func New(rootPrefix string, envsDirs []string) *Resolver {
	return &Resolver{RootPrefix: rootPrefix, EnvsDirs: envsDirs}
}

// Resolve는 인자를 다음 순서로 해석한다.
//
//  1. "root" 또는 빈 값은 root prefix
//  2. ~ 확장과 dialect 경로 변환 후 실제로 존재하면 그 경로
//  3. 경로 구분자가 있으면 그 경로 (없으면 not found)
//  4. 이름이면 EnvsDirs를 순서대로 찾고, 없으면 첫 후보를 보고
//
// 해석한 뒤에는 매번 MarkerDir 존재를 다시 확인한다.
func (r *Resolver) Resolve(arg string, d *shell.Dialect) (*Environment, error) {
	candidate := r.candidate(arg, d)

	prefix, err := filepath.Abs(candidate)
	if err != nil {
		return nil, fmt.Errorf("resolver.Resolve: %w", err)
	}

	info, err := os.Stat(prefix)
	if err != nil {
		return nil, &ResolveError{Arg: displayArg(arg), Err: ErrEnvironmentNotFound}
	}
	if !info.IsDir() || !IsEnvironment(prefix) {
		return nil, &ResolveError{Arg: displayArg(arg), Err: ErrNotAnEnvironment}
	}

	if r.isRoot(prefix) {
		return &Environment{Prefix: prefix, Name: BaseKeyword, Base: true}, nil
	}
	return &Environment{Prefix: prefix, Name: filepath.Base(prefix)}, nil
}

func (r *Resolver) candidate(arg string, d *shell.Dialect) string {
	if arg == "" || arg == BaseKeyword {
		return r.RootPrefix
	}

	expanded, err := homedir.Expand(arg)
	if err != nil {
		expanded = arg
	}
	native := d.PathFrom(expanded)
	if exists(native) {
		return native
	}
	if strings.ContainsAny(arg, `/\`) {
		return native
	}

	var first string
	for _, dir := range r.EnvsDirs {
		c := filepath.Join(dir, arg)
		if first == "" {
			first = c
		}
		if exists(c) {
			return c
		}
	}
	if first == "" {
		return native
	}
	return first
}

func (r *Resolver) isRoot(prefix string) bool {
	if r.RootPrefix == "" {
		return false
	}
	root, err := filepath.Abs(r.RootPrefix)
	if err != nil {
		return false
	}
	return root == prefix
}

func displayArg(arg string) string {
	if arg == "" {
		return BaseKeyword
	}
	return arg
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// IsEnvironment는 prefix 아래에 MarkerDir 디렉토리가 있는지 보고한다.
func IsEnvironment(prefix string) bool {
	info, err := os.Stat(filepath.Join(prefix, MarkerDir))
	return err == nil && info.IsDir()
}
