package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-ap/errors"
	"gopkg.in/yaml.v3"
)

// Feed is a schedule the server publishes under its own name.
type Feed struct {
	// Name is the path element the feed is served under.
	Name string `yaml:"name"`

	// URL of the schedule document.
	URL string `yaml:"url"`

	// Timezone used for start times without an offset (e.g. "Europe/Berlin").
	Timezone string `yaml:"timezone"`
}

// Config is the server configuration.
type Config struct {
	Listen  string        `yaml:"listen"`
	Timeout time.Duration `yaml:"timeout"`

	// Timezone is the fallback for every feed that doesn't set its own.
	Timezone string `yaml:"timezone"`
	Feeds    []Feed `yaml:"feeds"`
}

func Default() *Config {
	return &Config{
		Listen:  "localhost:9999",
		Timeout: 30 * time.Second,
		Feeds:   []Feed{},
	}
}

// Normalize fills in defaults for missing values.
func (c *Config) Normalize() {
	def := Default()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Feeds == nil {
		c.Feeds = []Feed{}
	}
	for i := range c.Feeds {
		c.Feeds[i].Name = strings.ToLower(strings.TrimSpace(c.Feeds[i].Name))
		if c.Feeds[i].Timezone == "" {
			c.Feeds[i].Timezone = c.Timezone
		}
	}
}

// Validate checks that every feed has a unique name and an URL, and that
// the timezones can be loaded.
func (c *Config) Validate() error {
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return errors.Annotatef(err, "invalid timezone %q", c.Timezone)
		}
	}
	seen := make(map[string]bool)
	for _, f := range c.Feeds {
		if f.Name == "" {
			return errors.NotValidf("feed without a name: %s", f.URL)
		}
		if seen[f.Name] {
			return errors.NotValidf("duplicate feed name %q", f.Name)
		}
		seen[f.Name] = true
		if f.URL == "" {
			return errors.NotValidf("feed %q has no URL", f.Name)
		}
		if f.Timezone != "" {
			if _, err := time.LoadLocation(f.Timezone); err != nil {
				return errors.Annotatef(err, "feed %q: invalid timezone %q", f.Name, f.Timezone)
			}
		}
	}
	return nil
}

// Feed returns the configured feed called name.
func (c *Config) Feed(name string) (Feed, bool) {
	name = strings.ToLower(name)
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, true
		}
	}
	return Feed{}, false
}

// Load reads the YAML configuration at path. A missing file results in
// the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Annotatef(err, "unable to read config %s", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Annotatef(err, "unable to parse config %s", path)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
