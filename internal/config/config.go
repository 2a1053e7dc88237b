// Package config loads the YAML application configuration.
//
// Loading is fail-open: a missing or unreadable config file yields the
// built-in defaults so the application always starts usable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ve7ltx/rssdos/internal/feed"
)

// Config is the application configuration.
type Config struct {
	DataDir string `yaml:"data_dir"`

	RefreshSeconds     int `yaml:"refresh_seconds"`
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
	MaxItemsTotal      int `yaml:"max_items_total"`
	MaxItemsPerFeed    int `yaml:"max_items_per_feed"`

	LogLevel string `yaml:"log_level"`

	Speech SpeechConfig `yaml:"speech"`

	Feeds []FeedConfig `yaml:"feeds"`
}

// SpeechConfig controls the headline announcer.
type SpeechConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Command        string   `yaml:"command,omitempty"` // empty picks a platform default
	Args           []string `yaml:"args,omitempty"`
	SpeakOnStart   bool     `yaml:"speak_on_start"`
	IncludeSummary bool     `yaml:"include_summary"`
}

// FeedConfig is one feed entry in the config file.
type FeedConfig struct {
	Name     string   `yaml:"name"`
	Code     string   `yaml:"code,omitempty"`
	Category string   `yaml:"category"`
	URLs     []string `yaml:"urls"`
	Enabled  *bool    `yaml:"enabled,omitempty"` // nil means enabled
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:            filepath.Join(home, ".rssdos"),
		RefreshSeconds:     180,
		HTTPTimeoutSeconds: 15,
		MaxItemsTotal:      700,
		MaxItemsPerFeed:    140,
		LogLevel:           "info",
		Speech: SpeechConfig{
			Enabled:        true,
			SpeakOnStart:   false,
			IncludeSummary: false,
		},
	}
}

// Path returns the default config file location.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rssdos", "config.yaml")
}

// Load reads the config file at path, or returns defaults when it is
// missing. A malformed file is reported but still yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	cfg.applyBounds()
	return cfg, nil
}

// applyBounds replaces zero or nonsense values with defaults.
func (c *Config) applyBounds() {
	d := Default()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.RefreshSeconds <= 0 {
		c.RefreshSeconds = d.RefreshSeconds
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = d.HTTPTimeoutSeconds
	}
	if c.MaxItemsTotal <= 0 {
		c.MaxItemsTotal = d.MaxItemsTotal
	}
	if c.MaxItemsPerFeed <= 0 {
		c.MaxItemsPerFeed = d.MaxItemsPerFeed
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Sources converts the configured feed entries into registry sources.
// When no feeds are configured, the built-in feed table is returned.
func (c *Config) Sources() []feed.Source {
	if len(c.Feeds) == 0 {
		return feed.DefaultSources()
	}

	sources := make([]feed.Source, 0, len(c.Feeds))
	for _, fc := range c.Feeds {
		if fc.Name == "" || len(fc.URLs) == 0 {
			continue
		}
		code := fc.Code
		if code == "" {
			code = defaultCode(fc.Name)
		}
		enabled := fc.Enabled == nil || *fc.Enabled
		sources = append(sources, feed.Source{
			ID:       slug(fc.Name),
			Name:     fc.Name,
			Code:     code,
			Category: parseCategory(fc.Category),
			URLs:     fc.URLs,
			Enabled:  enabled,
		})
	}
	return sources
}

// CacheFile returns the path of the item cache snapshot.
func (c *Config) CacheFile() string {
	return filepath.Join(c.DataDir, "rssdos_cache.json")
}

// SeenFile returns the path of the seen-id snapshot.
func (c *Config) SeenFile() string {
	return filepath.Join(c.DataDir, "rssdos_seen.json")
}

func parseCategory(s string) feed.Category {
	cat := feed.Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range feed.Categories() {
		if cat == known {
			return cat
		}
	}
	return feed.CategoryOther
}

// slug derives a stable source ID from the display name.
func slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// defaultCode derives a short display code when none is configured.
func defaultCode(name string) string {
	trimmed := strings.ToUpper(strings.ReplaceAll(name, " ", ""))
	if len(trimmed) > 6 {
		trimmed = trimmed[:6]
	}
	return trimmed
}
