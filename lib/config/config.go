// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// DeleteAction selects what the dashboard's delete operation does.
type DeleteAction string

const (
	// DeleteActionDelete removes the record permanently.
	DeleteActionDelete DeleteAction = "delete"
	// DeleteActionDeactivate flips the record to Inactive instead of
	// removing it, preserving history.
	DeleteActionDeactivate DeleteAction = "deactivate"
)

// Config is the master configuration for the Staffdeck client.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Backend configures the employee management API.
	Backend BackendConfig `yaml:"backend"`

	// Admin configures the administrator dashboard.
	Admin AdminConfig `yaml:"admin"`

	// Session configures where the login session is stored.
	Session SessionConfig `yaml:"session"`

	// Per-environment overrides, applied after the base config loads.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Backend *BackendConfig `yaml:"backend,omitempty"`
	Admin   *AdminConfig   `yaml:"admin,omitempty"`
	Session *SessionConfig `yaml:"session,omitempty"`
}

// BackendConfig configures the employee management API connection.
type BackendConfig struct {
	// BaseURL is the root of the backend API, without a trailing slash.
	// Default: http://localhost:8080/api
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each HTTP request.
	// Default: 15
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (backend BackendConfig) Timeout() time.Duration {
	return time.Duration(backend.TimeoutSeconds) * time.Second
}

// AdminConfig configures the administrator dashboard.
type AdminConfig struct {
	// PageSize is the listing page size.
	// Default: 10
	PageSize int `yaml:"page_size"`

	// DeleteAction selects between permanent deletion and
	// deactivation for the dashboard's delete operation.
	// Default: delete
	DeleteAction DeleteAction `yaml:"delete_action"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	// File is the session file path. Empty means the default
	// XDG location. ${HOME} and similar variables are expanded.
	File string `yaml:"file"`
}

// Default returns the default configuration. These defaults stand on
// their own: unlike most deployments' server configs, a client config
// file is optional, so every field must work out of the box.
func Default() *Config {
	return &Config{
		Environment: Development,
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 15,
		},
		Admin: AdminConfig{
			PageSize:     10,
			DeleteAction: DeleteActionDelete,
		},
	}
}

// Load loads configuration from the STAFFDECK_CONFIG environment
// variable. If the variable is unset, the defaults are returned; the
// client must work with zero setup.
func Load() (*Config, error) {
	configPath := os.Getenv("STAFFDECK_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file is
// merged over the defaults, then the section matching Environment is
// applied, then ${VAR} patterns are expanded.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Backend != nil {
		if overrides.Backend.BaseURL != "" {
			c.Backend.BaseURL = overrides.Backend.BaseURL
		}
		if overrides.Backend.TimeoutSeconds != 0 {
			c.Backend.TimeoutSeconds = overrides.Backend.TimeoutSeconds
		}
	}

	if overrides.Admin != nil {
		if overrides.Admin.PageSize != 0 {
			c.Admin.PageSize = overrides.Admin.PageSize
		}
		if overrides.Admin.DeleteAction != "" {
			c.Admin.DeleteAction = overrides.Admin.DeleteAction
		}
	}

	if overrides.Session != nil {
		if overrides.Session.File != "" {
			c.Session.File = overrides.Session.File
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Backend.BaseURL = expandVars(c.Backend.BaseURL, vars)
	c.Session.File = expandVars(c.Session.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Backend.BaseURL == "" {
		errs = append(errs, fmt.Errorf("backend.base_url is required"))
	}

	if c.Backend.TimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("backend.timeout_seconds must be at least 1"))
	}

	if c.Admin.PageSize < 1 {
		errs = append(errs, fmt.Errorf("admin.page_size must be at least 1"))
	}

	if c.Admin.DeleteAction != DeleteActionDelete && c.Admin.DeleteAction != DeleteActionDeactivate {
		errs = append(errs, fmt.Errorf("admin.delete_action must be %q or %q",
			DeleteActionDelete, DeleteActionDeactivate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
