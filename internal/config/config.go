// Package config handles .tally.yaml and .tally.toml configuration files.
package config

import (
	"time"
)

// Config represents the contents of a .tally.yaml or .tally.toml file.
// Zero values mean "not set" and fall through to the next layer.
type Config struct {
	DeliveryDate  string       `yaml:"delivery_date,omitempty" toml:"delivery_date,omitempty"`
	TeamSize      *int         `yaml:"team_size,omitempty" toml:"team_size,omitempty"`
	Title         string       `yaml:"title,omitempty" toml:"title,omitempty"`
	OutputFormat  string       `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	SkipMalformed bool         `yaml:"skip_malformed,omitempty" toml:"skip_malformed,omitempty"`
	Server        ServerConfig `yaml:"server,omitempty" toml:"server,omitempty"`
	Watch         WatchConfig  `yaml:"watch,omitempty" toml:"watch,omitempty"`
}

// ServerConfig holds settings for the HTTP upload server.
type ServerConfig struct {
	Addr        string `yaml:"addr,omitempty" toml:"addr,omitempty"`
	MaxUploadMB int    `yaml:"max_upload_mb,omitempty" toml:"max_upload_mb,omitempty"`
}

// WatchConfig holds settings for the directory watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty" toml:"debounce,omitempty"`
}

// File names looked up in the working directory. YAML wins when both exist.
const (
	FileName     = ".tally.yaml"
	TOMLFileName = ".tally.toml"
)

// DateLayout is the format of delivery_date and the --today/--delivery-date flags.
const DateLayout = "2006-01-02"

// Defaults for settings outside the pipeline.
const (
	DefaultAddr        = ":8501"
	DefaultMaxUploadMB = 32
	DefaultDebounce    = 300 * time.Millisecond
)

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Addr returns the server listen address, or DefaultAddr.
func (c *Config) Addr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return DefaultAddr
}

// MaxUploadBytes returns the request body cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	mb := c.Server.MaxUploadMB
	if mb <= 0 {
		mb = DefaultMaxUploadMB
	}
	return int64(mb) << 20
}

// Debounce returns the watcher quiet period. Invalid values fall back to
// DefaultDebounce; Validate reports them.
func (c *Config) Debounce() time.Duration {
	if c.Watch.Debounce == "" {
		return DefaultDebounce
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}
