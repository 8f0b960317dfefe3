package shell

import (
	"fmt"
	"strings"
)

// SourcedVar는 sourced wrapper가 호출할 때만 설정하는 호출 모드 표식이다.
const SourcedVar = "CONDACT_SOURCED"

// IntegrationMarker는 rc 파일에 이미 설치되었는지 판별하는 주석 문자열이다.
const IntegrationMarker = "condact shell integration"

// HookSnippet은 activate/deactivate를 현재 세션에서 실행하는 wrapper 스니펫을 반환한다.
// exe는 condact 실행 파일 경로다.
func HookSnippet(d *Dialect, exe string) string {
	header := fmt.Sprintf("%s %s (%s)\n", commentPrefix(d), IntegrationMarker, d.ID)
	switch {
	case d.Batch:
		return header + batchSnippet(exe)
	case d.ID == "fish":
		return header + fishSnippet(d, exe)
	case d.ID == "powershell":
		return header + powershellSnippet(d, exe)
	case d.Terminator == ";":
		return header + cshSnippet(d, exe)
	default:
		return header + posixSnippet(d, exe)
	}
}

func commentPrefix(d *Dialect) string {
	if d.Batch {
		return "@REM"
	}
	return "#"
}

func posixSnippet(d *Dialect, exe string) string {
	var b strings.Builder
	for _, op := range []string{"activate", "deactivate"} {
		fmt.Fprintf(&b, `%[1]s() {
  _condact_out="$(if [ -n "${PS1+x}" ]; then export PS1; fi; %[2]s=1 %[3]s %[1]s --shell %[4]s "$@")" || {
    _condact_rc=$?
    unset _condact_out
    return $_condact_rc
  }
  eval "$_condact_out"
  unset _condact_out
}
`, op, SourcedVar, d.Quote(exe), d.ID)
	}
	return b.String()
}

func fishSnippet(d *Dialect, exe string) string {
	var b strings.Builder
	for _, op := range []string{"activate", "deactivate"} {
		fmt.Fprintf(&b, `function %[1]s
    set -l out (env %[2]s=1 %[3]s %[1]s --shell fish $argv | string collect)
    set -l rc $pipestatus[1]
    test $rc -eq 0; or return $rc
    eval $out
end
`, op, SourcedVar, d.Quote(exe))
	}
	return b.String()
}

func cshSnippet(d *Dialect, exe string) string {
	var b strings.Builder
	for _, op := range []string{"activate", "deactivate"} {
		fmt.Fprintf(&b, "alias %[1]s 'setenv %[2]s 1; setenv prompt \"$prompt\"; "+
			"set _condact_out = \"`%[3]s %[1]s --shell %[4]s \\!*`\"; "+
			"unsetenv %[2]s; unsetenv prompt; eval \"$_condact_out\"; unset _condact_out'\n",
			op, SourcedVar, exe, d.ID)
	}
	return b.String()
}

func powershellSnippet(d *Dialect, exe string) string {
	var b strings.Builder
	for _, op := range []string{"activate", "deactivate"} {
		fmt.Fprintf(&b, `function %[1]s {
    $env:%[2]s = '1'
    try { $out = & %[3]s %[1]s --shell powershell @args | Out-String }
    finally { Remove-Item Env:%[2]s -ErrorAction SilentlyContinue }
    if ($LASTEXITCODE -eq 0 -and $out) { Invoke-Expression $out }
}
`, op, SourcedVar, d.Quote(exe))
	}
	return b.String()
}

// batchSnippet은 "CALL condact.bat activate ENV" 형태로 호출하는 배치 파일 본문이다.
// 출력은 임시 배치 파일에 받아 종료 코드가 0일 때만 CALL하고, 종료 코드는 EXIT /B로 돌려준다.
func batchSnippet(exe string) string {
	return fmt.Sprintf(`@SET "%[1]s=1"
@SET "_CONDACT_OUT=%%TEMP%%\condact-%%RANDOM%%%%RANDOM%%.bat"
@"%[2]s" %%* --shell cmd.exe > "%%_CONDACT_OUT%%"
@SET "_CONDACT_RC=%%ERRORLEVEL%%"
@SET "%[1]s="
@IF "%%_CONDACT_RC%%"=="0" CALL "%%_CONDACT_OUT%%"
@DEL "%%_CONDACT_OUT%%" 2>NUL
@SET "_CONDACT_OUT=" & SET "_CONDACT_RC=" & EXIT /B %%_CONDACT_RC%%
`, SourcedVar, exe)
}
