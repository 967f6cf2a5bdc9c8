// Package config loads account credentials and client settings from a TOML
// file, with environment variables taking precedence over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/f4ah6o/xmlsearch-go/internal/fetcher"
	"github.com/f4ah6o/xmlsearch-go/internal/request"
	"github.com/f4ah6o/xmlsearch-go/internal/xmlsearch"
)

// Environment variables that override the config file.
const (
	EnvUser    = "XMLSEARCH_USER"
	EnvKey     = "XMLSEARCH_KEY"
	EnvBaseURL = "XMLSEARCH_BASE_URL"
	EnvConfig  = "XMLSEARCH_CONFIG"
)

// Config represents the structure of config.toml
type Config struct {
	User      string         `toml:"user"`
	Key       string         `toml:"key"`
	BaseURL   string         `toml:"base_url"`
	Timeout   Duration       `toml:"timeout"`
	VerifyTLS bool           `toml:"verify_tls"`
	Proxy     *Proxy         `toml:"proxy"`
	Snippets  map[string]int `toml:"snippets"`
}

// Proxy is the [proxy] table.
type Proxy struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultPath returns the config file location. It checks XMLSEARCH_CONFIG
// first, then falls back to <user config dir>/xmlsearch/config.toml
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, "xmlsearch", "config.toml"), nil
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error; the result then comes from the environment
// alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			md, err := toml.DecodeFile(path, &cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if _, err := cfg.Options(); err != nil {
		return nil, fmt.Errorf("invalid [snippets] table: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvKey); v != "" {
		c.Key = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// Options returns the default snippet options with the [snippets] table applied.
func (c *Config) Options() (request.Options, error) {
	opts := request.DefaultOptions()
	if err := opts.Apply(c.Snippets); err != nil {
		return request.Options{}, err
	}
	return opts, nil
}

// Client converts the file settings into client settings.
func (c *Config) Client() xmlsearch.Config {
	cc := xmlsearch.Config{
		User:      c.User,
		Key:       c.Key,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout.Duration,
		VerifyTLS: c.VerifyTLS,
	}
	if c.Proxy != nil && c.Proxy.Host != "" {
		cc.Proxy = &fetcher.Proxy{
			Host:     c.Proxy.Host,
			Port:     c.Proxy.Port,
			User:     c.Proxy.User,
			Password: c.Proxy.Password,
		}
	}
	return cc
}
