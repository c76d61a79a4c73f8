package cli

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/avivsinai/threadlabel/internal/classify"
	"github.com/avivsinai/threadlabel/internal/config"
	"github.com/avivsinai/threadlabel/internal/format"
	"github.com/avivsinai/threadlabel/internal/fsq"
	"github.com/avivsinai/threadlabel/internal/logging"
	"github.com/avivsinai/threadlabel/internal/rules"
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type commonFlags struct {
	Config   string
	LogLevel string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	flags := &commonFlags{}
	fs.StringVar(&flags.Config, "config", "", "Config file (or THREADLABEL_CONFIG; default ./threadlabel.toml if present)")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	return flags
}

// env is everything a command needs after flags are parsed.
type env struct {
	cfg    config.Config
	log    zerolog.Logger
	engine *rules.Engine
}

func setup(common *commonFlags) (*env, error) {
	cfg, err := config.Load(common.Config)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	level := cfg.LogLevel
	if common.LogLevel != "" {
		level = common.LogLevel
	}
	log, err := logging.New(os.Stderr, level, cfg.LogFormat)
	if err != nil {
		return nil, UsageError("%v", err)
	}
	if len(cfg.Unknown) > 0 {
		log.Warn().Str("config", cfg.Path).Strs("keys", cfg.Unknown).Msg("ignoring unknown config keys")
	}

	engine, err := rules.NewEngine(cfg.RuleSpecs()...)
	if err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("config %s: %w", cfg.Path, err)
		}
		return nil, err
	}
	log.Debug().Str("config", cfg.Path).Int("custom_rules", len(cfg.Rules)).Msg("engine ready")
	return &env{cfg: cfg, log: log, engine: engine}, nil
}

func (e *env) classifier(explain bool) *classify.Classifier {
	return classify.New(e.engine,
		classify.WithLayouts(e.cfg.TimestampLayouts...),
		classify.WithLogger(e.log),
		classify.WithExplain(explain),
	)
}

// classifyInput reads one input file (JSON request or .eml message) and
// labels it.
func classifyInput(c *classify.Classifier, path string) (classify.Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".eml") {
		t, err := format.ThreadFromEML(path)
		if err != nil {
			return classify.Result{}, err
		}
		return c.ClassifyThread(t), nil
	}
	raw, err := format.ReadRequestFile(path)
	if err != nil {
		return classify.Result{}, err
	}
	return c.Classify(raw)
}

// writeResultFile writes res atomically to path.
func writeResultFile(path string, res classify.Result) error {
	data, err := format.MarshalResult(res)
	if err != nil {
		return err
	}
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	_, err = fsq.WriteFileAtomic(dir, name, data, 0o644)
	return err
}

func isHelp(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func parseFlags(fs *flag.FlagSet, args []string, usage func()) (bool, error) {
	fs.SetOutput(io.Discard)
	if usage != nil {
		fs.Usage = usage
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, UsageError("%v", err)
	}
	if fs.NArg() > 0 {
		return false, UsageError("unexpected argument: %s", fs.Arg(0))
	}
	return false, nil
}

func usageWithFlags(fs *flag.FlagSet, usage string, notes ...string) func() {
	return func() {
		_ = writeStdoutLine("Usage:")
		_ = writeStdoutLine("  " + usage)
		if len(notes) > 0 {
			_ = writeStdoutLine("")
			for _, note := range notes {
				_ = writeStdoutLine(note)
			}
		}
		_ = writeStdoutLine("")
		_ = writeStdoutLine("Options:")
		_ = writeFlagDefaults(fs)
	}
}

func writeFlagDefaults(fs *flag.FlagSet) error {
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	if buf.Len() == 0 {
		return nil
	}
	return writeStdout("%s", buf.String())
}

// prompt writes label and reads one trimmed line. io.EOF is returned only
// when nothing was typed.
func prompt(in *bufio.Reader, label string) (string, error) {
	if err := writeStdout("%s", label); err != nil {
		return "", err
	}
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func confirmPrompt(in *bufio.Reader, question string) (bool, error) {
	line, err := prompt(in, question+" [y/N]: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

func writeStdout(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeStdoutLine(args ...any) error {
	_, err := fmt.Fprintln(os.Stdout, args...)
	return err
}

// multiStringFlag allows a flag to be specified multiple times.
// Implements flag.Value interface.
type multiStringFlag []string

func (m *multiStringFlag) String() string {
	if m == nil {
		return ""
	}
	return strings.Join(*m, ",")
}

func (m *multiStringFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}
