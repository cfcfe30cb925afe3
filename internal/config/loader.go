package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	path string
	dirs []string
}

// NewLoader creates a loader reading the YAML file at path. With an empty
// path it looks for traprange.yaml (or .yml) in the given directories and
// carries on with defaults when none exists.
func NewLoader(path string, dirs ...string) Loader {
	return &loader{path: path, dirs: dirs}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (TRAPRANGE_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.path != "" {
		v.SetConfigFile(l.path)
	} else {
		v.SetConfigName("traprange")
		v.SetConfigType("yaml")
		for _, dir := range l.dirs {
			v.AddConfigPath(dir)
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("TRAPRANGE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., TRAPRANGE_LOGGING_CONSOLE_LEVEL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"pages",
		"except_pages",
		"password",
		"format",
		"output",
		"concurrency",
		"grid",
		"keep_whitespace",
		"skip_broken_pages",
		"logging.console.level",
		"logging.file.level",
		"logging.file.destination",
		"logging.file.mode",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// No config file is acceptable unless one was named explicitly
		var notFound viper.ConfigFileNotFoundError
		if l.path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("format", defaults.Format)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("grid", defaults.Grid)
	v.SetDefault("keep_whitespace", defaults.KeepWhitespace)
	v.SetDefault("skip_broken_pages", defaults.SkipBrokenPages)

	v.SetDefault("logging.console.level", defaults.Logging.Console.Level)
	v.SetDefault("logging.file.level", defaults.Logging.File.Level)
	v.SetDefault("logging.file.mode", defaults.Logging.File.Mode)
}

// Load is a convenience function that loads path, or traprange.yaml from
// the current directory when path is empty.
func Load(path string) (*Config, error) {
	return NewLoader(path, ".").Load()
}
