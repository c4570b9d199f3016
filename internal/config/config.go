// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the webtrigger URL (which embeds
// a secret token) goes to the OS keychain or an environment variable.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chatch/forge-fsql/internal/xdg"
)

// Environment variables consumed at startup. The URL variable wins over
// the keychain so CI and scripts can bypass secure storage.
const (
	EnvWebtriggerURL  = "FSQL_WEBTRIGGER_URL"
	EnvTimeoutSeconds = "FSQL_TIMEOUT_SECONDS"
	EnvNoSchema       = "FSQL_NO_SCHEMA"
)

// DefaultTimeoutSeconds bounds a query round-trip when nothing overrides it.
const DefaultTimeoutSeconds = 30

// Config holds non-sensitive CLI settings.
type Config struct {
	// Endpoint records whether a webtrigger URL has been stored, never the URL itself.
	Endpoint EndpointConfig `json:"endpoint"`
	// TimeoutSeconds bounds each query round-trip.
	TimeoutSeconds int `json:"timeout_seconds"`
	// SkipSchemaPreload disables the schema load on session startup.
	SkipSchemaPreload bool `json:"skip_schema_preload"`
}

// EndpointConfig records endpoint provisioning state.
type EndpointConfig struct {
	Provided bool `json:"provided"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file returns defaults.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.TimeoutSeconds = DefaultTimeoutSeconds
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// TimeoutFromEnv returns the timeout override from the environment, or
// fallback when unset or unparsable.
func TimeoutFromEnv(fallback int) int {
	raw := strings.TrimSpace(os.Getenv(EnvTimeoutSeconds))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// NoSchemaFromEnv reports whether schema preloading is disabled via the
// environment.
func NoSchemaFromEnv() bool {
	v := strings.TrimSpace(os.Getenv(EnvNoSchema))
	return v == "1" || strings.EqualFold(v, "true")
}
