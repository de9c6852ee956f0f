// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the snow tools.
type Config struct {
	// ServiceNow configures the SNOW instance connection.
	ServiceNow ServiceNowConfig `yaml:"servicenow"`

	// Cache configures the persistent user/group lookup cache.
	Cache CacheConfig `yaml:"cache"`

	// Nagios configures alert URL rendering for tickets created from
	// Nagios notifications.
	Nagios NagiosConfig `yaml:"nagios"`
}

// ServiceNowConfig identifies the SNOW instance and credentials.
type ServiceNowConfig struct {
	// URL is the instance base URL (e.g. "https://fermi.servicenowservices.com").
	URL string `yaml:"url"`

	// Username authenticates Table API requests (HTTP Basic).
	Username string `yaml:"username"`

	// Password is the account password. May be left empty; commands
	// then prompt on the terminal.
	Password string `yaml:"password"`
}

// CacheConfig configures the on-disk lookup cache. An empty Path
// disables persistence; lookups are still memoized in-process.
type CacheConfig struct {
	// Path is the SQLite database file for cached user/group records.
	Path string `yaml:"path"`

	// TTL is how long a cached record stays valid (e.g. "24h").
	// Defaults to 24h when empty.
	TTL string `yaml:"ttl"`
}

// NagiosConfig configures the Nagios alert link template.
type NagiosConfig struct {
	// URLTemplate renders a link to the originating alert. ${host}
	// and ${service} placeholders are substituted; ${service} segments
	// are dropped for host-level alerts.
	URLTemplate string `yaml:"url_template"`
}

// Default returns the base configuration merged under the loaded file.
// It exists so every field has a sensible zero value, not as a substitute
// for the file — the file is required.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			TTL: "24h",
		},
	}
}

// Load loads configuration from the SNOW_CONFIG environment variable.
// Fails if the variable is unset; there is no search path.
func Load() (*Config, error) {
	path := os.Getenv("SNOW_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("SNOW_CONFIG environment variable not set; " +
			"set it to the path of your snow.yaml config file, or use the --config flag")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The file is
// the single source of truth; environment variables do not override its
// values. The only expansion performed is ${HOME}-style path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Cache.Path = expandVars(cfg.Cache.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.ServiceNow.URL == "" {
		errs = append(errs, fmt.Errorf("servicenow.url is required"))
	} else if !strings.HasPrefix(c.ServiceNow.URL, "https://") {
		errs = append(errs, fmt.Errorf("servicenow.url must use https (got %q)", c.ServiceNow.URL))
	}
	if c.ServiceNow.Username == "" {
		errs = append(errs, fmt.Errorf("servicenow.username is required"))
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			errs = append(errs, fmt.Errorf("cache.ttl: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CacheTTL returns the parsed cache TTL. Call after Validate; an
// unparseable value falls back to 24h rather than panicking.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 24 * time.Hour
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return ttl
}

// NagiosURL renders the Nagios alert link for a host and optional
// service. Returns empty when no template is configured.
func (c *Config) NagiosURL(host, service string) string {
	if c.Nagios.URLTemplate == "" {
		return ""
	}
	url := strings.ReplaceAll(c.Nagios.URLTemplate, "${host}", host)
	if service != "" {
		return strings.ReplaceAll(url, "${service}", service)
	}
	// Host-level alert: drop the ${service} path segment entirely.
	url = strings.ReplaceAll(url, "/${service}", "")
	return strings.ReplaceAll(url, "${service}", "")
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}
