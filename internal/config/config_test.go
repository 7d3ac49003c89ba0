package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.sr.ht/~mariusor/fahrplan/internal/config"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
		t.Fatalf("unable to write config: %s", err)
	}
	return p
}

func TestLoad(t *testing.T) {
	p := writeConfig(t, `
timezone: UTC
feeds:
  - name: " MyConf "
    url: https://example.com/schedule.xml
  - name: other
    url: https://example.com/other.xml
    timezone: Europe/Berlin
`)
	c, err := config.Load(p)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if c.Listen != "localhost:9999" {
		t.Errorf("expected default listen address, got %q", c.Listen)
	}
	if c.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %s", c.Timeout)
	}
	f, ok := c.Feed("MYCONF")
	if !ok {
		t.Fatalf("expected feed myconf to be found")
	}
	if f.URL != "https://example.com/schedule.xml" || f.Timezone != "UTC" {
		t.Errorf("unexpected feed %+v", f)
	}
	if f, _ := c.Feed("other"); f.Timezone != "Europe/Berlin" {
		t.Errorf("expected feed timezone to be kept, got %q", f.Timezone)
	}
	if _, ok := c.Feed("missing"); ok {
		t.Errorf("expected unknown feed not to be found")
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(c.Feeds) != 0 || c.Listen == "" {
		t.Errorf("expected default config, got %+v", c)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "feeds: [",
		"no name":      "feeds:\n  - url: https://example.com/a.xml\n",
		"no url":       "feeds:\n  - name: a\n",
		"duplicate":    "feeds:\n  - name: a\n    url: https://example.com/a.xml\n  - name: A\n    url: https://example.com/b.xml\n",
		"bad timezone": "timezone: Mars/Olympus\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, data)); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}
