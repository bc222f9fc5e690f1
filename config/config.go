// Package config loads potx settings from flags, POTX_* environment
// variables, an optional .env file and an optional potx.yaml file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mevdschee/potx/translate"
)

// EnvPrefix is the prefix of environment variables, e.g. POTX_DELAY.
const EnvPrefix = "POTX"

// Setting keys, shared by flags, environment and config file.
const (
	KeyDelay        = "delay"
	KeyLogDir       = "log-dir"
	KeySourceLang   = "source-lang"
	KeyMaxRetries   = "max-retries"
	KeyRetryBackoff = "retry-backoff"
	KeyTimeout      = "timeout"
	KeyProgress     = "progress"
	KeyVerify       = "verify"
	KeyDryRun       = "dry-run"
	KeyVerbose      = "verbose"
	KeyQuiet        = "quiet"
	KeyConfig       = "config"
)

// Config holds the settings of one run.
type Config struct {
	// Delay is the pause in seconds between two translation calls.
	Delay float64 `yaml:"delay"`
	// LogDir is where the per-run log is written; empty disables it.
	LogDir       string        `yaml:"log-dir"`
	SourceLang   string        `yaml:"source-lang"`
	MaxRetries   int           `yaml:"max-retries"`
	RetryBackoff time.Duration `yaml:"retry-backoff"`
	Timeout      time.Duration `yaml:"timeout"`
	Progress     bool          `yaml:"progress"`
	Verify       bool          `yaml:"verify"`
	DryRun       bool          `yaml:"dry-run"`
	Verbose      int           `yaml:"verbose"`
	Quiet        int           `yaml:"quiet"`

	// File is the config file that was read, if any.
	File string `yaml:"-"`
}

// BindFlags defines the settings flags on flags.
func BindFlags(flags *pflag.FlagSet) {
	flags.Float64(KeyDelay, 0, "seconds to wait between two translation requests")
	flags.String(KeyLogDir, "", "directory for the per-run log file (disabled when empty)")
	flags.String(KeySourceLang, "", "source language (default: catalog Language header, else auto-detect)")
	flags.Int(KeyMaxRetries, 0, "retries for a failed translation request")
	flags.Duration(KeyRetryBackoff, time.Second, "pause before the first retry, doubled for each further retry")
	flags.Duration(KeyTimeout, 0, "timeout for one translation request (0 = none)")
	flags.Bool(KeyProgress, true, "show a progress bar when writing to a terminal")
	flags.Bool(KeyVerify, true, "check that the written catalog loads with gotext")
	flags.Bool(KeyDryRun, false, "list the strings that would be translated and exit")
	flags.CountP(KeyVerbose, "v", "verbose mode")
	flags.CountP(KeyQuiet, "q", "quiet mode")
	flags.String(KeyConfig, "", "config file (default: ./potx.yaml or ~/.config/potx/potx.yaml)")
}

// Load reads settings in order of precedence: flags, environment (.env
// included), config file, defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("potx")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/potx")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Delay:        v.GetFloat64(KeyDelay),
		LogDir:       v.GetString(KeyLogDir),
		SourceLang:   strings.TrimSpace(v.GetString(KeySourceLang)),
		MaxRetries:   v.GetInt(KeyMaxRetries),
		RetryBackoff: v.GetDuration(KeyRetryBackoff),
		Timeout:      v.GetDuration(KeyTimeout),
		Progress:     v.GetBool(KeyProgress),
		Verify:       v.GetBool(KeyVerify),
		DryRun:       v.GetBool(KeyDryRun),
		Verbose:      v.GetInt(KeyVerbose),
		Quiet:        v.GetInt(KeyQuiet),
		File:         v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Delay < 0 {
		return fmt.Errorf("config: %s must not be negative (got %v)", KeyDelay, c.Delay)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config: %s must not be negative (got %d)", KeyMaxRetries, c.MaxRetries)
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("config: %s must not be negative (got %v)", KeyRetryBackoff, c.RetryBackoff)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: %s must not be negative (got %v)", KeyTimeout, c.Timeout)
	}
	if c.SourceLang != "" && c.SourceLang != translate.AutoDetect {
		if _, err := translate.ParseLanguage(c.SourceLang); err != nil {
			return fmt.Errorf("config: %s: %w", KeySourceLang, err)
		}
	}
	return nil
}

// DelayDuration returns Delay as a time.Duration.
func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay * float64(time.Second))
}

// YAML renders the settings as a config file.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
