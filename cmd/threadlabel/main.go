package main

import (
	"fmt"
	"os"

	"github.com/avivsinai/threadlabel/internal/cli"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && isVersionArg(os.Args[1]) {
		if _, err := fmt.Fprintln(os.Stdout, version); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(cli.ExitError)
		}
		return
	}
	if err := cli.Run(os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "threadlabel:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

func isVersionArg(arg string) bool {
	switch arg {
	case "--version", "version":
		return true
	default:
		return false
	}
}
