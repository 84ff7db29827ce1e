// Package config loads the settings of the command line tools from an
// optional YAML file and the command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Flag names which override the values of the same meaning in the file.
const (
	FlagFormat     = "format"
	FlagMaxDepth   = "max-depth"
	FlagJobs       = "jobs"
	FlagSkipChecks = "skip-checks"
	FlagLogLevel   = "log-level"
	FlagLogFile    = "log-file"
)

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

// Config holds the settings shared by all commands.
// A negative MaxDepth means no depth limit.
type Config struct {
	Format     string    `yaml:"format"`
	MaxDepth   int       `yaml:"maxDepth"`
	Jobs       int       `yaml:"jobs"`
	SkipChecks bool      `yaml:"skipChecks"`
	Log        LogConfig `yaml:"log"`
}

// Default returns the configuration used without a file.
func Default() Config {
	cfg := Config{MaxDepth: -1}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 25
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 7
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 5
	}
}

// Load reads the file at path. An empty path returns Default.
// A relative log file is resolved against the directory of the file.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	cfg := Config{MaxDepth: -1}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(filepath.Dir(path), cfg.Log.File)
	}
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// Override applies every flag of flags which was set explicitly.
// Flags which are not defined in flags are ignored.
func (c *Config) Override(flags *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		flag := flags.Lookup(name)
		return err == nil && flag != nil && flag.Changed
	}

	if changed(FlagFormat) {
		c.Format, err = flags.GetString(FlagFormat)
	}
	if changed(FlagMaxDepth) {
		c.MaxDepth, err = flags.GetInt(FlagMaxDepth)
	}
	if changed(FlagJobs) {
		c.Jobs, err = flags.GetInt(FlagJobs)
	}
	if changed(FlagSkipChecks) {
		c.SkipChecks, err = flags.GetBool(FlagSkipChecks)
	}
	if changed(FlagLogLevel) {
		c.Log.Level, err = flags.GetString(FlagLogLevel)
	}
	if changed(FlagLogFile) {
		c.Log.File, err = flags.GetString(FlagLogFile)
	}
	if err != nil {
		return err
	}

	c.setDefaults()
	return c.Validate()
}

// Validate checks the values which have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q (supported: text, json, yaml)", c.Format)
	}
	return nil
}
