package cli

import (
	"fmt"
	"strings"
)

// Run executes the command line args (without the program name).
func Run(args []string) error {
	if len(args) == 0 {
		return runDefault()
	}
	if isHelp(args[0]) {
		return printUsage()
	}
	// Bare flags are the classify command: threadlabel --in x --out y.
	if strings.HasPrefix(args[0], "-") {
		return runClassify(args)
	}

	switch args[0] {
	case "classify":
		return runClassify(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "menu":
		return runMenu(args[1:])
	case "rules":
		return runRules(args[1:])
	case "init":
		return runInit(args[1:])
	default:
		return UsageError("unknown command: %s", args[0])
	}
}

// runDefault is the no-argument invocation: the interactive menu, whether
// STDIN is a terminal or a script.
func runDefault() error {
	return runMenu(nil)
}

func printUsage() error {
	lines := []string{
		"threadlabel - rule-based email thread labels (English and Vietnamese)",
		"",
		"Usage:",
		"  threadlabel <command> [options]",
		"  threadlabel --in <path|-> [--out <path>]",
		"  threadlabel                      (interactive menu)",
		"",
		"Commands:",
		"  classify  Label one thread from JSON or .eml files",
		"  watch     Label thread files as they arrive in a directory",
		"  menu      Interactive classify-from-file / paste-JSON menu",
		"  rules     List label values and rule counts per dimension",
		"  init      Write a starter threadlabel.toml",
		"",
		"Environment:",
		"  THREADLABEL_CONFIG      Config file path",
		"  THREADLABEL_LOG_LEVEL   Log level override",
		"  THREADLABEL_LOG_FORMAT  console or json",
		"",
		"Exit codes:",
		fmt.Sprintf("  %d ok, %d error, %d usage, %d bad input, %d watch timeout",
			ExitSuccess, ExitError, ExitUsage, ExitInput, ExitTimeout),
	}
	for _, line := range lines {
		if err := writeStdoutLine(line); err != nil {
			return err
		}
	}
	return nil
}
