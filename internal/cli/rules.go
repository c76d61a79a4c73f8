package cli

import (
	"flag"
	"os"

	"github.com/avivsinai/threadlabel/internal/format"
	"github.com/avivsinai/threadlabel/internal/rules"
)

type dimensionInfo struct {
	Dimension rules.Dimension `json:"dimension"`
	Values    []string        `json:"values"`
	Default   string          `json:"default"`
	Rules     int             `json:"rules"`
}

func runRules(args []string) error {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	common := addCommonFlags(fs)
	jsonFlag := fs.Bool("json", false, "Emit JSON output")
	usage := usageWithFlags(fs, "threadlabel rules [--json]",
		"Values are listed in precedence order; configured [[rules]] are counted.")
	if handled, err := parseFlags(fs, args, usage); err != nil {
		return err
	} else if handled {
		return nil
	}
	e, err := setup(common)
	if err != nil {
		return err
	}

	defaults := rules.DefaultLabel()
	defaultOf := map[rules.Dimension]string{
		rules.DimRequestType: defaults.RequestType,
		rules.DimUrgency:     defaults.Urgency,
		rules.DimThreadState: defaults.ThreadState,
		rules.DimScheduling:  defaults.Scheduling,
		rules.DimAttachments: defaults.Attachments[0],
		rules.DimTone:        defaults.Tone,
	}
	infos := make([]dimensionInfo, 0, len(rules.Dimensions))
	for _, dim := range rules.Dimensions {
		infos = append(infos, dimensionInfo{
			Dimension: dim,
			Values:    e.engine.Values(dim),
			Default:   defaultOf[dim],
			Rules:     e.engine.RuleCount(dim),
		})
	}

	if *jsonFlag {
		return format.WriteResult(os.Stdout, infos)
	}
	for _, info := range infos {
		if err := writeStdout("%-13s %3d rules  %v  (default %s)\n", info.Dimension, info.Rules, info.Values, info.Default); err != nil {
			return err
		}
	}
	return nil
}
