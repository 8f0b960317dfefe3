package main

import (
	"io"
	"os"

	"github.com/hbjs97/condact/internal/cli"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func runMain(args []string, stdout, stderr io.Writer, exit func(int)) {
	app := &cli.App{}
	code := app.Execute(args[1:], stdout, stderr)
	if code != cli.ExitSuccess {
		exit(int(code))
	}
}
