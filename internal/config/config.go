package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/avivsinai/threadlabel/internal/fsq"
	"github.com/avivsinai/threadlabel/internal/rules"
)

const (
	EnvConfig    = "THREADLABEL_CONFIG"
	EnvLogLevel  = "THREADLABEL_LOG_LEVEL"
	EnvLogFormat = "THREADLABEL_LOG_FORMAT"

	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "threadlabel.toml"
	// EnvFile is loaded into the environment before anything else.
	EnvFile = ".env"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the threadlabel.toml file.
type Config struct {
	LogLevel         string       `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat        string       `toml:"log_format" validate:"omitempty,oneof=console json"`
	TimestampLayouts []string     `toml:"timestamp_layouts,omitempty" validate:"dive,required"`
	Watch            WatchConfig  `toml:"watch"`
	Rules            []RuleConfig `toml:"rules,omitempty" validate:"dive"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
	// Unknown lists keys present in the file that no field consumed.
	Unknown []string `toml:"-"`
}

type WatchConfig struct {
	Dir          string `toml:"dir,omitempty"`
	OutDir       string `toml:"out_dir,omitempty"`
	Poll         bool   `toml:"poll"`
	PollInterval string `toml:"poll_interval,omitempty" validate:"omitempty,duration"`
}

// RuleConfig is one [[rules]] entry.
type RuleConfig struct {
	Dimension string `toml:"dimension" validate:"required,oneof=request_type urgency thread_state scheduling attachments tone"`
	Lang      string `toml:"lang" validate:"required,oneof=en vi"`
	Value     string `toml:"value" validate:"required"`
	Pattern   string `toml:"pattern" validate:"required"`
	Except    string `toml:"except,omitempty"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",
		Watch:     WatchConfig{PollInterval: "500ms"},
	}
}

// GetPollInterval parses Watch.PollInterval, defaulting to 500ms.
func (w WatchConfig) GetPollInterval() (time.Duration, error) {
	if strings.TrimSpace(w.PollInterval) == "" {
		return 500 * time.Millisecond, nil
	}
	return time.ParseDuration(w.PollInterval)
}

// RuleSpecs converts the [[rules]] entries for rules.NewEngine.
func (c Config) RuleSpecs() []rules.RuleSpec {
	out := make([]rules.RuleSpec, 0, len(c.Rules))
	for _, r := range c.Rules {
		out = append(out, rules.RuleSpec{
			Dimension: rules.Dimension(r.Dimension),
			Lang:      rules.Language(r.Lang),
			Value:     r.Value,
			Pattern:   r.Pattern,
			Except:    r.Except,
		})
	}
	return out
}

// Load resolves and reads the configuration. The .env file in the working
// directory is loaded first (existing variables win). The file is path if
// set, else $THREADLABEL_CONFIG, else threadlabel.toml when it exists, else
// built-in defaults. Environment overrides apply last, then validation.
func Load(path string) (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	explicit := true
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path == "" {
		path, explicit = DefaultFile, false
	}

	cfg, err := LoadConfig(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		cfg = Default()
	default:
		return Config{}, err
	}

	applyEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig decodes a single file over Default without validating it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	for _, key := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	cfg.Path = path
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	return v
}

// Validate checks field constraints. Whether a rule's value and pattern fit
// its dimension is left to rules.NewEngine.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		case "duration":
			msgs = append(msgs, fmt.Sprintf("%s must be a positive duration, got %q", field, fe.Value()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, ", "))
}

// WriteConfig writes cfg as TOML, refusing to replace an existing file
// unless force is set.
func WriteConfig(path string, cfg Config, force bool) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if force {
		_, err := fsq.WriteFileAtomic(dir, name, buf.Bytes(), 0o644)
		return err
	}
	if _, err := fsq.CreateFileAtomic(dir, name, buf.Bytes(), 0o644); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		return err
	}
	return nil
}
