/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for depspec.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultGitTimeout bounds each git subprocess.
	DefaultGitTimeout = time.Minute

	// DefaultCacheSize bounds the hosted-git lookup cache.
	DefaultCacheSize = 1000

	// DefaultConcurrency is the number of dependencies resolved at once.
	DefaultConcurrency = 4
)

// Config represents the depspec configuration.
type Config struct {
	// LockfileDir is the directory lockfile-relative paths are computed
	// against. Empty means the project directory.
	LockfileDir string `yaml:"lockfileDir" json:"lockfileDir"`

	// GitTimeout bounds each git subprocess, e.g. "30s".
	GitTimeout Duration `yaml:"gitTimeout" json:"gitTimeout"`

	// CacheSize bounds the number of memoized hosted-git lookups.
	CacheSize int `yaml:"cacheSize" json:"cacheSize"`

	// Concurrency limits how many dependencies resolve at once.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// ProbeHTTPS allows an HTTP request to check whether a hosted
	// repository is public before falling back to ssh.
	ProbeHTTPS bool `yaml:"probeHTTPS" json:"probeHTTPS"`

	// Include restricts manifest dependencies to aliases matching any of
	// these globs.
	Include []string `yaml:"include" json:"include"`
}

// Duration is a time.Duration written as a string like "1m30s".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.set(node.Value)
}

// UnmarshalJSON parses a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.set(s)
}

// MarshalText renders the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) set(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		GitTimeout:  Duration(DefaultGitTimeout),
		CacheSize:   DefaultCacheSize,
		Concurrency: DefaultConcurrency,
		ProbeHTTPS:  true,
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.GitTimeout <= 0 {
		return fmt.Errorf("%w: gitTimeout must be positive, got %s", ErrInvalidConfig, time.Duration(c.GitTimeout))
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cacheSize must not be negative, got %d", ErrInvalidConfig, c.CacheSize)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative, got %d", ErrInvalidConfig, c.Concurrency)
	}
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad include pattern %q", ErrInvalidConfig, pattern)
		}
	}
	return nil
}

// Includes reports whether the dependency alias passes the include filter.
// An empty filter includes everything.
func (c *Config) Includes(alias string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if matched, _ := doublestar.Match(pattern, alias); matched {
			return true
		}
	}
	return false
}

// FilterAliases returns the aliases that pass the include filter, in order.
func (c *Config) FilterAliases(aliases []string) []string {
	result := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if c.Includes(alias) {
			result = append(result, alias)
		}
	}
	return result
}
