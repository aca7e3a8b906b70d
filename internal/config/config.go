// Package config loads and validates the secretlit configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "SECRETLIT_CONFIG"

// defaultFileName is looked up in the working directory when no explicit
// path is given.
const defaultFileName = "secretlit.yaml"

// RulesConfig selects which rules run. Include wins over Disable when both
// are set.
type RulesConfig struct {
	Include []string `json:"include" yaml:"include"`
	Disable []string `json:"disable" yaml:"disable"`
}

// MatcherConfig extends the built-in secret heuristics.
type MatcherConfig struct {
	ExtraNameSubstrings []string `json:"extra_name_substrings" yaml:"extra_name_substrings"`
	ExtraValuePrefixes  []string `json:"extra_value_prefixes" yaml:"extra_value_prefixes"`
	MinRunLength        int      `json:"min_run_length" yaml:"min_run_length" validate:"gte=0,lte=512"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=text json sarif"`
}

// Config is the root configuration document.
type Config struct {
	Rules           RulesConfig   `json:"rules" yaml:"rules"`
	Matcher         MatcherConfig `json:"matcher" yaml:"matcher"`
	Output          OutputConfig  `json:"output" yaml:"output"`
	SkipConfigFiles bool          `json:"skip_config_files" yaml:"skip_config_files"`
}

// NewDefault returns the configuration used when no file is present.
func NewDefault() Config {
	return Config{
		Output: OutputConfig{Format: "text"},
	}
}

// ResolvePath determines the config file path. Priority: explicit flag,
// SECRETLIT_CONFIG, secretlit.yaml in the working directory. Empty result
// means "use defaults".
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}
	if _, err := os.Stat(defaultFileName); err == nil {
		return defaultFileName
	}
	return ""
}

// Load reads, decodes and validates the config at path. An empty path yields
// the defaults. An explicitly named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := NewDefault()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return cfg, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks structural constraints on the configuration.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	for _, p := range cfg.Matcher.ExtraValuePrefixes {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("matcher.extra_value_prefixes must not contain blank entries")
		}
	}
	for _, n := range cfg.Matcher.ExtraNameSubstrings {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("matcher.extra_name_substrings must not contain blank entries")
		}
	}
	return nil
}

// IncludeCSV renders the include list for the rule selection helpers.
func (c Config) IncludeCSV() string { return strings.Join(c.Rules.Include, ",") }

// DisableCSV renders the disable list for the rule selection helpers.
func (c Config) DisableCSV() string { return strings.Join(c.Rules.Disable, ",") }
