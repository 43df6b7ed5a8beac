package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yonasBSD/hacker-news/hn"
)

// Config holds all application configuration.
type Config struct {
	Sort        hn.SortMode `yaml:"sort"`
	Count       int         `yaml:"count"`
	BaseURL     string      `yaml:"base_url"`
	TimeoutSecs int         `yaml:"timeout_secs"`
	LogLevel    string      `yaml:"log_level"`
	LogFormat   string      `yaml:"log_format"`
	Color       string      `yaml:"color"`
	Format      string      `yaml:"format"`
	Progress    bool        `yaml:"progress"`
}

// ConfigurationError reports an input rejected before any network activity.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		Sort:        hn.Hottest,
		Count:       30,
		BaseURL:     hn.BaseURL,
		TimeoutSecs: 10,
		LogLevel:    "info",
		LogFormat:   "text",
		Color:       "auto",
		Format:      "list",
		Progress:    true,
	}
}

// DefaultPath returns the per-user config file location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hn", "config.yaml")
}

// Load builds a validated Config from defaults, an optional YAML file and
// environment variables.
//
// HN_CONFIG overrides path. An explicitly named file must exist; when no path
// is given the file at DefaultPath is read if present. HN_SORT, HN_COUNT and
// HN_BASE_URL override the file.
func Load(path string) (Config, error) {
	if envPath := os.Getenv("HN_CONFIG"); envPath != "" {
		path = envPath
	}

	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, &ConfigurationError{Field: "config file", Value: path, Err: err}
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, &ConfigurationError{Field: "config file", Value: path, Err: err}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HN_SORT"); v != "" {
		mode, err := hn.ParseSortMode(v)
		if err != nil {
			return &ConfigurationError{Field: "HN_SORT", Value: v, Err: err}
		}
		cfg.Sort = mode
	}
	if v := os.Getenv("HN_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigurationError{Field: "HN_COUNT", Value: v, Reason: "must be an integer"}
		}
		cfg.Count = n
	}
	if v := os.Getenv("HN_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	return nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.Sort != hn.Hottest && c.Sort != hn.Latest {
		return &ConfigurationError{Field: "sort", Value: c.Sort.String(), Reason: "must be latest or hottest"}
	}
	if c.Count < 0 {
		return &ConfigurationError{Field: "count", Value: strconv.Itoa(c.Count), Reason: "must not be negative"}
	}
	if c.TimeoutSecs <= 0 {
		return &ConfigurationError{Field: "timeout", Value: strconv.Itoa(c.TimeoutSecs), Reason: "must be positive"}
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return &ConfigurationError{Field: "base_url", Value: c.BaseURL, Reason: "must be an http or https URL"}
	}

	if err := oneOf("log_level", c.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, "text", "json"); err != nil {
		return err
	}
	if err := oneOf("color", c.Color, "auto", "always", "never"); err != nil {
		return err
	}
	return oneOf("format", c.Format, "list", "table")
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ConfigurationError{
		Field:  field,
		Value:  value,
		Reason: "must be one of " + strings.Join(allowed, ", "),
	}
}
