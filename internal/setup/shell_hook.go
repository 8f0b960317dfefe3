package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/hbjs97/condact/internal/shell"
)

// DetectShell은 $SHELL에서 현재 사용자의 dialect를 추정한다.
// 등록되지 않은 셸이면 빈 문자열을 반환한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		if os.Getenv("ComSpec") != "" {
			return "cmd.exe"
		}
		return ""
	}
	name := strings.TrimSuffix(filepath.Base(sh), ".exe")
	if name == "pwsh" {
		name = "powershell"
	}
	if _, err := shell.Lookup(name); err != nil {
		return ""
	}
	return name
}

// ShellRCPath는 dialect별 RC 파일 경로를 반환한다.
func ShellRCPath(id string) string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	switch id {
	case "bash", "bash.exe", "cygwin":
		return filepath.Join(home, ".bashrc")
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "sh", "dash", "ksh", "posh":
		return filepath.Join(home, ".profile")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "condact.fish")
	case "csh":
		return filepath.Join(home, ".cshrc")
	case "tcsh":
		return filepath.Join(home, ".tcshrc")
	case "powershell":
		return filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")
	case "cmd.exe":
		return filepath.Join(home, "condact_init.bat")
	default:
		return ""
	}
}

// InstallShellHook은 RC 파일에 condact 셸 통합을 추가한다.
// 이미 설치되어 있으면 건너뛰고 false를 반환한다.
func InstallShellHook(d *shell.Dialect, exe, rcPath string) (bool, error) {
	existing, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	if strings.Contains(string(existing), shell.IntegrationMarker) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0700); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", shell.HookSnippet(d, exe)); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	return true, nil
}
