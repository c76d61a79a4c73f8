package cli

import (
	"flag"
	"os"

	"github.com/avivsinai/threadlabel/internal/classify"
	"github.com/avivsinai/threadlabel/internal/format"
)

func runClassify(args []string) error {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	common := addCommonFlags(fs)
	inFlag := fs.String("in", "", "Input JSON file, or - for STDIN (default - when STDIN is piped)")
	outFlag := fs.String("out", "", "Output JSON file (default STDOUT)")
	explainFlag := fs.Bool("explain", false, "Include the rule behind each label value")
	var emlFlags multiStringFlag
	fs.Var(&emlFlags, "eml", "RFC 5322 message file; repeat to build one thread (first file sets the subject)")

	usage := usageWithFlags(fs, "threadlabel classify --in <path|-> [--out <path>] [--explain]",
		"Input is a JSON object {\"thread\": {\"subject\": ..., \"messages\": [...]}}.",
		"Use --eml instead of --in to label a thread built from .eml files.")
	if handled, err := parseFlags(fs, args, usage); err != nil {
		return err
	} else if handled {
		return nil
	}

	in := *inFlag
	switch {
	case in != "" && len(emlFlags) > 0:
		return UsageError("--in and --eml cannot be combined")
	case in == "" && len(emlFlags) == 0:
		if stdinIsTerminal() {
			return UsageError("--in is required (or pipe JSON on STDIN)")
		}
		in = "-"
	}

	e, err := setup(common)
	if err != nil {
		return err
	}
	c := e.classifier(*explainFlag)

	var res classify.Result
	switch {
	case len(emlFlags) > 0:
		t, err := format.ThreadFromEML(emlFlags...)
		if err != nil {
			return inputError(err)
		}
		res = c.ClassifyThread(t)
	case in == "-":
		raw, err := format.DecodeRequest(os.Stdin)
		if err != nil {
			return inputError(err)
		}
		if res, err = c.Classify(raw); err != nil {
			return inputError(err)
		}
	default:
		if res, err = classifyInput(c, in); err != nil {
			return inputError(err)
		}
	}

	if *outFlag == "" {
		return format.WriteResult(os.Stdout, res)
	}
	if err := writeResultFile(*outFlag, res); err != nil {
		return err
	}
	e.log.Info().Str("out", *outFlag).Str("thread_id", res.ThreadID).Msg("wrote result")
	return nil
}
