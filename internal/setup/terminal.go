package setup

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive는 stdin과 stdout이 모두 터미널인지 보고한다.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
