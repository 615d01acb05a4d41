// Package config loads thailint settings from .thailint.yaml at the lint
// root, falling back to the [tool.thailint] table of pyproject.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/be-wise-be-kind/thailint/internal/dry"
	"github.com/be-wise-be-kind/thailint/internal/token"
)

// Config represents the complete thailint configuration
type Config struct {
	Dry          DryConfig          `yaml:"dry" mapstructure:"dry" toml:"dry"`
	Nesting      NestingConfig      `yaml:"nesting" mapstructure:"nesting" toml:"nesting"`
	MagicNumbers MagicNumbersConfig `yaml:"magic_numbers" mapstructure:"magic_numbers" toml:"magic_numbers"`
	Exclude      []string           `yaml:"exclude,omitempty" mapstructure:"exclude" toml:"exclude"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging" toml:"logging"`
}

// DryConfig controls the duplicate-code rule and its cache
type DryConfig struct {
	MinDuplicateLines  int                           `yaml:"min_duplicate_lines" mapstructure:"min_duplicate_lines" toml:"min_duplicate_lines"`
	MinDuplicateTokens int                           `yaml:"min_duplicate_tokens" mapstructure:"min_duplicate_tokens" toml:"min_duplicate_tokens"`
	MinOccurrences     int                           `yaml:"min_occurrences" mapstructure:"min_occurrences" toml:"min_occurrences"`
	CacheEnabled       bool                          `yaml:"cache_enabled" mapstructure:"cache_enabled" toml:"cache_enabled"`
	CachePath          string                        `yaml:"cache_path" mapstructure:"cache_path" toml:"cache_path"`
	CacheMaxAgeDays    int                           `yaml:"cache_max_age_days" mapstructure:"cache_max_age_days" toml:"cache_max_age_days"`
	Filters            FiltersConfig                 `yaml:"filters" mapstructure:"filters" toml:"filters"`
	PerLanguage        map[string]LanguageThresholds `yaml:"per_language,omitempty" mapstructure:"per_language" toml:"per_language"`
}

// FiltersConfig toggles the structural false-positive filters
type FiltersConfig struct {
	ImportGroupFilter     bool `yaml:"import_group_filter" mapstructure:"import_group_filter" toml:"import_group_filter"`
	KeywordArgumentFilter bool `yaml:"keyword_argument_filter" mapstructure:"keyword_argument_filter" toml:"keyword_argument_filter"`
}

// LanguageThresholds overrides duplicate thresholds for one language.
// A zero field inherits the global value.
type LanguageThresholds struct {
	MinDuplicateLines  int `yaml:"min_duplicate_lines" mapstructure:"min_duplicate_lines" toml:"min_duplicate_lines"`
	MinDuplicateTokens int `yaml:"min_duplicate_tokens" mapstructure:"min_duplicate_tokens" toml:"min_duplicate_tokens"`
}

// NestingConfig controls the nesting-depth rule
type NestingConfig struct {
	MaxNestingDepth int `yaml:"max_nesting_depth" mapstructure:"max_nesting_depth" toml:"max_nesting_depth"`
}

// MagicNumbersConfig controls the magic-number rule
type MagicNumbersConfig struct {
	AllowedNumbers []float64 `yaml:"allowed_numbers" mapstructure:"allowed_numbers" toml:"allowed_numbers"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level" toml:"level"`
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Dry: DryConfig{
			MinDuplicateLines:  4,
			MinDuplicateTokens: 30,
			MinOccurrences:     2,
			CacheEnabled:       true,
			CachePath:          filepath.Join(".thailint-cache", "dry.db"),
			CacheMaxAgeDays:    30,
			Filters: FiltersConfig{
				ImportGroupFilter:     true,
				KeywordArgumentFilter: true,
			},
		},
		Nesting: NestingConfig{
			MaxNestingDepth: 3,
		},
		MagicNumbers: MagicNumbersConfig{
			AllowedNumbers: []float64{-1, 0, 1, 2, 10, 100, 1000},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadConfig reads configuration for the given lint root. Precedence:
// .thailint.yaml, then pyproject.toml [tool.thailint], then defaults.
// Keys absent from a config file keep their default values.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".thailint")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return loadPyproject(root)
		}
		return nil, fmt.Errorf("reading .thailint.yaml: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing .thailint.yaml: %w", err)
	}
	return cfg, nil
}

// loadPyproject reads the [tool.thailint] table. A missing file or a
// pyproject without the table yields the defaults.
func loadPyproject(root string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading pyproject.toml: %w", err)
	}

	cfg := DefaultConfig()
	doc := struct {
		Tool struct {
			Thailint *Config `toml:"thailint"`
		} `toml:"tool"`
	}{}
	doc.Tool.Thailint = cfg
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Dry.MinDuplicateLines < 1 {
		return &ConfigError{Field: "dry.min_duplicate_lines", Message: "must be at least 1"}
	}
	if c.Dry.MinDuplicateTokens < 1 {
		return &ConfigError{Field: "dry.min_duplicate_tokens", Message: "must be at least 1"}
	}
	if c.Dry.MinOccurrences < 2 {
		return &ConfigError{Field: "dry.min_occurrences", Message: "must be at least 2"}
	}
	if c.Dry.CacheMaxAgeDays < 0 {
		return &ConfigError{Field: "dry.cache_max_age_days", Message: "must not be negative"}
	}
	for lang, t := range c.Dry.PerLanguage {
		if t.MinDuplicateLines < 0 {
			return &ConfigError{
				Field:   "dry.per_language." + lang + ".min_duplicate_lines",
				Message: "must not be negative",
			}
		}
		if t.MinDuplicateTokens < 0 {
			return &ConfigError{
				Field:   "dry.per_language." + lang + ".min_duplicate_tokens",
				Message: "must not be negative",
			}
		}
	}
	if c.Nesting.MaxNestingDepth < 1 {
		return &ConfigError{Field: "nesting.max_nesting_depth", Message: "must be at least 1"}
	}
	return nil
}

// DryEngine translates the file-level settings into the detection engine's
// configuration. Per-language overrides inherit unset fields from the
// global thresholds.
func (c *Config) DryEngine() dry.Config {
	cfg := dry.Config{
		MinLines:       c.Dry.MinDuplicateLines,
		MinTokens:      c.Dry.MinDuplicateTokens,
		MinOccurrences: c.Dry.MinOccurrences,
		Filters: dry.Filters{
			ImportGroup: c.Dry.Filters.ImportGroupFilter,
			KeywordArgs: c.Dry.Filters.KeywordArgumentFilter,
		},
	}
	if len(c.Dry.PerLanguage) > 0 {
		cfg.PerLanguage = make(map[token.Language]dry.Thresholds, len(c.Dry.PerLanguage))
		for name, t := range c.Dry.PerLanguage {
			th := dry.Thresholds{
				MinLines:  t.MinDuplicateLines,
				MinTokens: t.MinDuplicateTokens,
			}
			if th.MinLines == 0 {
				th.MinLines = c.Dry.MinDuplicateLines
			}
			if th.MinTokens == 0 {
				th.MinTokens = c.Dry.MinDuplicateTokens
			}
			cfg.PerLanguage[token.Language(name)] = th
		}
	}
	return cfg
}

// CacheMaxAge converts cache_max_age_days to a duration. Zero disables
// age-based eviction.
func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Dry.CacheMaxAgeDays) * 24 * time.Hour
}
