// Package config defines the runtime configuration shared by all commands.
package config

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Config holds the settings resolved from flags, VEIL_* environment variables and the config file.
type Config struct {
	// Common flags
	Show     bool `yaml:"-"`
	Parallel int  `validate:"min=1"                      yaml:"parallel"`
	Quiet    bool `yaml:"quiet"`
	Delete   bool `yaml:"delete"`
	Force    bool `yaml:"force"`
	Stats    bool `yaml:"stats"`
	Dry      bool `yaml:"dry"`

	PreserveTimestamps bool `mapstructure:"preserve-timestamps" yaml:"preserve-timestamps"`

	// Timeout bounds the work on a single file. Zero disables it.
	Timeout time.Duration `validate:"min=0" yaml:"timeout"`

	// MaxSize is a human readable upper bound on input file size, e.g. "100MB".
	MaxSize string `mapstructure:"max-size" validate:"required" yaml:"max-size"`

	// Password policy
	MinLength    int    `mapstructure:"min-length"    validate:"min=1" yaml:"min-length"`
	PasswordFile string `mapstructure:"password-file" validate:"omitempty,file" yaml:"password-file"`

	// Decrypt only accepts files carrying the encrypted suffix when Strict is set.
	Strict bool `yaml:"strict"`

	// Input selection
	Exclude     []string `yaml:"exclude"`
	ExcludeFrom string   `mapstructure:"exclude-from" validate:"omitempty,file" yaml:"exclude-from"`

	// Logging
	LogLevel  string `mapstructure:"log-level"  validate:"oneof=debug info warn error" yaml:"log-level"`
	LogFormat string `mapstructure:"log-format" validate:"oneof=text json"             yaml:"log-format"`

	// Command-specific
	Decrypt bool `mapstructure:"-" yaml:"decrypt"`

	// Positional arguments
	Files []string `mapstructure:"-" validate:"min=1" yaml:"files"`

	maxBytes int64
}

// Validate validates the configuration against the struct tags and parses derived values.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	size, err := humanize.ParseBytes(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max-size %q: %w", c.MaxSize, err)
	}

	if size == 0 {
		return fmt.Errorf("invalid max-size %q: must be positive", c.MaxSize)
	}

	c.maxBytes = int64(min(size, uint64(1<<62))) //nolint:gosec

	return nil
}

// MaxBytes is MaxSize in bytes. It is only populated after Validate.
func (c *Config) MaxBytes() int64 {
	return c.maxBytes
}

// YAML renders the configuration for --show.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshalling configuration: %w", err)
	}

	return string(out), nil
}
