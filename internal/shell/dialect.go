package shell

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownDialect는 등록되지 않은 셸 식별자를 조회할 때 반환된다.
var ErrUnknownDialect = errors.New("unknown shell dialect")

// Dialect는 하나의 셸 문법을 기술하는 불변 레코드다.
// 템플릿의 %s 자리에는 이름과 Quote를 거친 값이 순서대로 들어간다.
type Dialect struct {
	// ID는 --shell 플래그로 지정하는 식별자다.
	ID string
	// Exe는 doctor가 확인하는 실행 파일 이름이다.
	Exe string
	// ProbeArgs는 셸이 정상 실행되는지 확인할 때 쓰는 인자다.
	ProbeArgs []string

	// PathSep는 검색 경로 항목 구분자다 (":" 또는 ";").
	PathSep string
	// DirSep는 디렉토리 구분자다.
	DirSep string

	SetVar    string
	SetPrompt string
	UnsetVar  string
	Source    string
	// Terminator는 각 문장 끝에 붙는다. csh 계열은 backtick 캡처가 개행을 공백으로 바꾸므로 ";"가 필요하다.
	Terminator string
	// PathList가 true이면 PATH를 항목별 인자로 대입한다 (fish).
	PathList bool

	Quote    func(string) string
	PathTo   func(string) string
	PathFrom func(string) string

	// PromptVar가 비어 있으면 프롬프트는 다루지 않는다.
	PromptVar string
	// HookSuffix는 activate.d / deactivate.d 에서 실행할 스크립트 확장자다.
	HookSuffix string
	// BinSubdirs는 환경 prefix 기준 실행 파일 디렉토리이며 PATH 앞에 이 순서대로 붙는다.
	BinSubdirs []string
	// Translate는 네이티브 Windows 경로를 POSIX 표기로 바꿔 쓰는 MSYS/Cygwin 계열이다.
	Translate bool
	// Batch는 placeholder 토큰과 Library\bin 재주입 규칙을 쓰는 cmd.exe 계열이다.
	Batch bool
}

var posixBase = Dialect{
	ProbeArgs:  []string{"-c", "exit 0"},
	PathSep:    ":",
	DirSep:     "/",
	SetVar:     "export %s=%s",
	SetPrompt:  "%s=%s",
	UnsetVar:   "unset %s",
	Source:     ". %s || :",
	Quote:      quotePosix,
	PathTo:     identity,
	PathFrom:   identity,
	PromptVar:  "PS1",
	HookSuffix: ".sh",
	BinSubdirs: []string{"bin"},
}

func posix(id string) Dialect {
	d := posixBase
	d.ID = id
	d.Exe = id
	return d
}

func cshFamily(id string) Dialect {
	return Dialect{
		ID:         id,
		Exe:        id,
		ProbeArgs:  []string{"-c", "exit 0"},
		PathSep:    ":",
		DirSep:     "/",
		SetVar:     "setenv %s %s",
		SetPrompt:  "set %s=%s",
		UnsetVar:   "unsetenv %s",
		Source:     "source %s",
		Terminator: ";",
		Quote:      quotePosix,
		PathTo:     identity,
		PathFrom:   identity,
		PromptVar:  "prompt",
		HookSuffix: ".csh",
		BinSubdirs: []string{"bin"},
	}
}

func msys(id, exe string, to, from func(string) string) Dialect {
	d := posixBase
	d.ID = id
	d.Exe = exe
	d.PathTo = to
	d.PathFrom = from
	d.BinSubdirs = []string{"Scripts"}
	d.Translate = true
	return d
}

var registry = func() map[string]Dialect {
	rows := []Dialect{
		posix("bash"),
		posix("zsh"),
		posix("sh"),
		posix("dash"),
		posix("ksh"),
		posix("posh"),
		{
			ID:         "fish",
			Exe:        "fish",
			ProbeArgs:  []string{"-c", "exit 0"},
			PathSep:    ":",
			DirSep:     "/",
			SetVar:     "set -gx %s %s",
			UnsetVar:   "set -e %s",
			Source:     "source %s; or true",
			PathList:   true,
			Quote:      quoteFish,
			PathTo:     identity,
			PathFrom:   identity,
			HookSuffix: ".fish",
			BinSubdirs: []string{"bin"},
		},
		cshFamily("csh"),
		cshFamily("tcsh"),
		{
			ID:         "powershell",
			Exe:        "powershell",
			ProbeArgs:  []string{"-NoProfile", "-Command", "exit 0"},
			PathSep:    ";",
			DirSep:     `\`,
			SetVar:     "$env:%s = %s",
			UnsetVar:   "Remove-Item Env:%s -ErrorAction SilentlyContinue",
			Source:     "try { . %s } catch { Write-Warning $_ }",
			Quote:      quotePowerShell,
			PathTo:     identity,
			PathFrom:   identity,
			HookSuffix: ".ps1",
			BinSubdirs: []string{"Scripts"},
		},
		{
			ID:         "cmd.exe",
			Exe:        "cmd",
			ProbeArgs:  []string{"/c", "exit 0"},
			PathSep:    ";",
			DirSep:     `\`,
			SetVar:     `@SET "%s=%s"`,
			SetPrompt:  `@SET "%s=%s"`,
			UnsetVar:   "@SET %s=",
			Source:     `@CALL "%s"`,
			Quote:      identity,
			PathTo:     identity,
			PathFrom:   identity,
			PromptVar:  "PROMPT",
			HookSuffix: ".bat",
			BinSubdirs: []string{`Library\bin`, "Scripts"},
			Batch:      true,
		},
		msys("bash.exe", "bash", WinToMsys, MsysToWin),
		msys("cygwin", "bash", WinToCygwin, CygwinToWin),
	}
	m := make(map[string]Dialect, len(rows))
	for _, r := range rows {
		if r.SetPrompt == "" {
			r.SetPrompt = r.SetVar
		}
		m[r.ID] = r
	}
	return m
}()

// Lookup은 식별자에 해당하는 Dialect를 반환한다.
func Lookup(id string) (*Dialect, error) {
	d, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownDialect, id, strings.Join(IDs(), ", "))
	}
	return &d, nil
}

// IDs는 등록된 모든 식별자를 정렬해 반환한다.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BinDirs는 dialect 표기의 prefix에서 PATH에 들어갈 디렉토리 목록을 만든다.
func (d *Dialect) BinDirs(prefix string) []string {
	prefix = strings.TrimRight(prefix, `/\`)
	dirs := make([]string, 0, len(d.BinSubdirs))
	for _, sub := range d.BinSubdirs {
		dirs = append(dirs, prefix+d.DirSep+sub)
	}
	return dirs
}

// Auxiliary는 Batch 셸이 시작할 때 자동으로 주입하는 디렉토리를 반환한다.
// Batch가 아니면 빈 문자열이다.
func (d *Dialect) Auxiliary(prefix string) string {
	if !d.Batch || len(d.BinSubdirs) < 2 {
		return ""
	}
	return d.BinDirs(prefix)[0]
}

// NormalizePath는 드라이브 문자로 시작하는 Windows 표기 경로를 dialect 표기로 바꾼다.
// Translate가 아닌 dialect나 이미 dialect 표기인 경로는 그대로 반환한다.
func (d *Dialect) NormalizePath(p string) string {
	if !d.Translate || !drivePattern.MatchString(p) {
		return p
	}
	return d.PathTo(p)
}

// NormalizeSearchPath는 네이티브 Windows 프로그램으로 넘어오면서 변환된 PATH를
// dialect 표기로 되돌린다. 항목이 하나뿐인 값도 변환한다.
// Translate가 아닌 dialect에서는 그대로 반환한다.
func (d *Dialect) NormalizeSearchPath(v string) string {
	if !d.Translate || !hasDriveLetter(v) {
		return v
	}
	parts := strings.Split(v, ";")
	for i, p := range parts {
		parts[i] = d.PathTo(p)
	}
	return strings.Join(parts, ":")
}
