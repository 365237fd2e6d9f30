package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/reposh/pkg/reposh"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type RepositoryConfig struct {
	Owner  string `yaml:"owner"`
	Name   string `yaml:"name"`
	Branch string `yaml:"branch,omitempty"`
}

type EndpointsConfig struct {
	API string `yaml:"api,omitempty"`
	Raw string `yaml:"raw,omitempty"`
	Web string `yaml:"web,omitempty"`
}

type RetryConfig struct {
	MaxAttempts  int    `yaml:"max_attempts,omitempty"`
	InitialDelay string `yaml:"initial_delay,omitempty"`
	MaxDelay     string `yaml:"max_delay,omitempty"`
}

type LuaConfig struct {
	Timeout string `yaml:"timeout,omitempty"`
}

type Config struct {
	Repository RepositoryConfig `yaml:"repository"`
	Endpoints  EndpointsConfig  `yaml:"endpoints,omitempty"`
	Timeout    string           `yaml:"timeout,omitempty"`
	Retry      RetryConfig      `yaml:"retry,omitempty"`
	Lua        LuaConfig        `yaml:"lua,omitempty"`
}

const ConfigFileName = "reposh.yaml"

// Load reads reposh.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns a Config with every endpoint and limit filled in and no repository.
func Default() *Config {
	return &Config{
		Repository: RepositoryConfig{Branch: reposh.DefaultBranch},
		Endpoints: EndpointsConfig{
			API: reposh.DefaultAPIURL,
			Raw: reposh.DefaultRawURL,
			Web: reposh.DefaultWebURL,
		},
		Timeout: reposh.DefaultHTTPTimeout.String(),
		Retry: RetryConfig{
			MaxAttempts:  reposh.DefaultRetryMaxAttempts,
			InitialDelay: reposh.DefaultRetryInitialDelay.String(),
			MaxDelay:     reposh.DefaultRetryMaxDelay.String(),
		},
		Lua: LuaConfig{Timeout: reposh.DefaultInterpreterTimeout.String()},
	}
}

// Merge overlays every non-empty field of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	setIfNotEmpty(&c.Repository.Owner, other.Repository.Owner)
	setIfNotEmpty(&c.Repository.Name, other.Repository.Name)
	setIfNotEmpty(&c.Repository.Branch, other.Repository.Branch)
	setIfNotEmpty(&c.Endpoints.API, other.Endpoints.API)
	setIfNotEmpty(&c.Endpoints.Raw, other.Endpoints.Raw)
	setIfNotEmpty(&c.Endpoints.Web, other.Endpoints.Web)
	setIfNotEmpty(&c.Timeout, other.Timeout)
	setIfNotEmpty(&c.Retry.InitialDelay, other.Retry.InitialDelay)
	setIfNotEmpty(&c.Retry.MaxDelay, other.Retry.MaxDelay)
	setIfNotEmpty(&c.Lua.Timeout, other.Lua.Timeout)
	if other.Retry.MaxAttempts != 0 {
		c.Retry.MaxAttempts = other.Retry.MaxAttempts
	}
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// SetRepository parses "owner/name" into the repository section.
func (c *Config) SetRepository(slug string) error {
	owner, name, ok := strings.Cut(strings.Trim(slug, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("repository must look like owner/name, got %q: %w", slug, reposh.ErrInvalidConfig)
	}
	c.Repository.Owner = owner
	c.Repository.Name = name
	return nil
}

// HasRepository reports whether a remote repository is configured.
func (c *Config) HasRepository() bool {
	return c.Repository.Owner != "" && c.Repository.Name != ""
}

// Validate checks durations and limits.
// It returns a multi-error if multiple validation failures occur.
func (c *Config) Validate() error {
	var errs []error

	if (c.Repository.Owner == "") != (c.Repository.Name == "") {
		errs = append(errs, fmt.Errorf("repository owner and name must be set together: %w", reposh.ErrInvalidConfig))
	}
	if c.HasRepository() && c.Repository.Branch == "" {
		errs = append(errs, fmt.Errorf("repository branch is required: %w", reposh.ErrInvalidConfig))
	}

	for field, value := range map[string]string{
		"timeout":             c.Timeout,
		"retry.initial_delay": c.Retry.InitialDelay,
		"retry.max_delay":     c.Retry.MaxDelay,
		"lua.timeout":         c.Lua.Timeout,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %v: %w", field, err, reposh.ErrInvalidConfig))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("%s cannot be negative: %w", field, reposh.ErrInvalidConfig))
		}
	}

	if c.Retry.MaxAttempts < -1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be >= -1: %w", reposh.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Duration parses a validated duration field, falling back when it is empty.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
