package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivsinai/threadlabel/internal/rules"
)

const sample = `
log_level = "debug"
log_format = "json"
timestamp_layouts = ["02/01/2006 15:04"]
colour = "blue"

[watch]
dir = "inbox"
out_dir = "labels"
poll = true
poll_interval = "2s"

[[rules]]
dimension = "urgency"
lang = "en"
value = "URGENT-24H"
pattern = '\bcode\s+red\b'

[[rules]]
dimension = "tone"
lang = "vi"
value = "FRUSTRATED"
pattern = "quá tệ"
except = "không quá tệ"
`

// isolate runs the test in an empty directory with no config variables set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"02/01/2006 15:04"}, cfg.TimestampLayouts)
	assert.Equal(t, WatchConfig{Dir: "inbox", OutDir: "labels", Poll: true, PollInterval: "2s"}, cfg.Watch)
	assert.Equal(t, []string{"colour"}, cfg.Unknown)

	interval, err := cfg.Watch.GetPollInterval()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, interval)

	specs := cfg.RuleSpecs()
	require.Len(t, specs, 2)
	assert.Equal(t, rules.RuleSpec{Dimension: rules.DimUrgency, Lang: rules.English, Value: rules.UrgencyUrgent, Pattern: `\bcode\s+red\b`}, specs[0])
	assert.Equal(t, "không quá tệ", specs[1].Except)

	_, err = rules.NewEngine(specs...)
	assert.NoError(t, err)
}

func TestLoadDefaultFileAndEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte(sample), 0o644))
	t.Setenv(EnvLogLevel, "WARN")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, cfg.Path)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadEnvPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "env.toml")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "error"`), 0o644))
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv(EnvLogFormat))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("THREADLABEL_LOG_FORMAT=json\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadSyntaxError(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		msg  string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel must be one of"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat must be one of"},
		{"poll interval", func(c *Config) { c.Watch.PollInterval = "soon" }, "Watch.PollInterval must be a positive duration"},
		{"rule dimension", func(c *Config) {
			c.Rules = []RuleConfig{{Dimension: "color", Lang: "en", Value: "RED", Pattern: "red"}}
		}, "Rules[0].Dimension must be one of"},
		{"rule pattern", func(c *Config) {
			c.Rules = []RuleConfig{{Dimension: "tone", Lang: "en", Value: "POSITIVE"}}
		}, "Rules[0].Pattern is required"},
		{"empty layout", func(c *Config) { c.TimestampLayouts = []string{""} }, "TimestampLayouts[0] is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	assert.NoError(t, Validate(Default()))
}

func TestConfigWriteRead(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, DefaultFile)
	cfg := Default()
	cfg.TimestampLayouts = []string{"02/01/2006"}
	cfg.Rules = []RuleConfig{{Dimension: "tone", Lang: "en", Value: "POSITIVE", Pattern: `\bkudos\b`}}

	require.NoError(t, WriteConfig(path, cfg, false))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Rules, loaded.Rules)
	assert.Equal(t, cfg.TimestampLayouts, loaded.TimestampLayouts)
	assert.Empty(t, loaded.Unknown)

	assert.Error(t, WriteConfig(path, cfg, false))
	assert.NoError(t, WriteConfig(path, cfg, true))
}
