package shell

import (
	"regexp"
	"strings"
)

var (
	drivePattern     = regexp.MustCompile(`^([A-Za-z]):[\\/]?`)
	msysDrivePattern = regexp.MustCompile(`^/([A-Za-z])(/|$)`)
	anyDrivePattern  = regexp.MustCompile(`(^|;)[A-Za-z]:[\\/]`)
)

func identity(s string) string { return s }

func hasDriveLetter(s string) bool { return anyDrivePattern.MatchString(s) }

// WinToMsys는 네이티브 Windows 경로를 MSYS 표기로 바꾼다: C:\a\b -> /c/a/b.
// 드라이브 문자가 없으면 구분자만 바꾼다.
func WinToMsys(p string) string {
	return winToUnix(p, "/")
}

// WinToCygwin은 네이티브 Windows 경로를 Cygwin 표기로 바꾼다: C:\a -> /cygdrive/c/a.
func WinToCygwin(p string) string {
	return winToUnix(p, "/cygdrive/")
}

func winToUnix(p, root string) string {
	p = strings.TrimSpace(p)
	if m := drivePattern.FindStringSubmatch(p); m != nil {
		rest := strings.ReplaceAll(p[len(m[0]):], `\`, "/")
		out := root + strings.ToLower(m[1])
		if rest != "" {
			out += "/" + rest
		}
		return out
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// MsysToWin은 WinToMsys의 역변환이다.
func MsysToWin(p string) string {
	if m := msysDrivePattern.FindStringSubmatch(p); m != nil {
		return unixToWin(m[1], p[len(m[0]):])
	}
	return strings.ReplaceAll(p, "/", `\`)
}

// CygwinToWin은 WinToCygwin의 역변환이다.
func CygwinToWin(p string) string {
	const prefix = "/cygdrive"
	if strings.HasPrefix(p, prefix+"/") {
		if m := msysDrivePattern.FindStringSubmatch(p[len(prefix):]); m != nil {
			return unixToWin(m[1], p[len(prefix)+len(m[0]):])
		}
	}
	return strings.ReplaceAll(p, "/", `\`)
}

func unixToWin(drive, rest string) string {
	return strings.ToUpper(drive) + `:\` + strings.ReplaceAll(rest, "/", `\`)
}

// quotePosix는 s를 작은따옴표로 감싼다. 내부 따옴표는 '\''가 된다.
func quotePosix(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// quoteFish는 fish의 백슬래시 이스케이프로 s를 작은따옴표로 감싼다.
func quoteFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

func quotePowerShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
