package cli

import (
	"flag"

	"github.com/avivsinai/threadlabel/internal/config"
)

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	pathFlag := fs.String("path", config.DefaultFile, "Config file to create")
	inboxFlag := fs.String("watch-dir", "", "Inbox directory to store under [watch]")
	outFlag := fs.String("watch-out-dir", "", "Labels directory to store under [watch]")
	forceFlag := fs.Bool("force", false, "Overwrite an existing config file")

	usage := usageWithFlags(fs, "threadlabel init [--path threadlabel.toml] [--force]")
	if handled, err := parseFlags(fs, args, usage); err != nil {
		return err
	} else if handled {
		return nil
	}

	cfg := config.Default()
	cfg.Watch.Dir = *inboxFlag
	cfg.Watch.OutDir = *outFlag
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.WriteConfig(*pathFlag, cfg, *forceFlag); err != nil {
		return err
	}
	return writeStdout("Wrote %s\n", *pathFlag)
}
