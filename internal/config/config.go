// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// Environment variable overrides.
const (
	EnvAPIKey  = "COLLEGEGENIE_API_KEY"
	EnvAPIURL  = "COLLEGEGENIE_API_URL"
	EnvModel   = "COLLEGEGENIE_MODEL"
	EnvOwnerID = "COLLEGEGENIE_OWNER_ID"
)

// Config is the application configuration, stored as TOML at
// ~/.collegegenie/config.toml.
type Config struct {
	API         APIConfig         `toml:"api"`
	User        UserConfig        `toml:"user"`
	Persistence PersistenceConfig `toml:"persistence"`
	UI          UIConfig          `toml:"ui"`
}

// APIConfig configures the completion endpoint.
type APIConfig struct {
	// BaseURL of the completion endpoint.
	BaseURL string `toml:"base_url"`

	// Key is the API key. Prefer the COLLEGEGENIE_API_KEY environment
	// variable over storing it here.
	Key string `toml:"key"`

	// Model name sent with completion requests.
	Model string `toml:"model"`

	// TimeoutSeconds bounds one completion request.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxRetries for transient failures before falling back.
	MaxRetries int `toml:"max_retries"`
}

// UserConfig identifies the student, all optional. An empty OwnerID means
// anonymous mode: fully functional, nothing persisted to the history
// database.
type UserConfig struct {
	Name    string `toml:"name"`
	OwnerID string `toml:"owner_id"`
}

// PersistenceConfig configures the history mirror.
type PersistenceConfig struct {
	// Enabled turns the history mirror on. It additionally requires an
	// owner ID.
	Enabled bool `toml:"enabled"`

	// DatabasePath overrides the default history database location.
	DatabasePath string `toml:"database_path"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	// Theme is "dark", "light", or "auto".
	Theme string `toml:"theme"`

	// ShowStatsFooter toggles the live latency/typing footer.
	ShowStatsFooter bool `toml:"show_stats_footer"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: 60,
			MaxRetries:     3,
		},
		Persistence: PersistenceConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme:           "auto",
			ShowStatsFooter: true,
		},
	}
}

// Dir returns the configuration directory, ~/.collegegenie.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(homeDir, ".collegegenie"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist, then applies environment overrides and validates.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		ensureSecurePermissions(path)
	case os.IsNotExist(err):
		// First run: defaults only.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config atomically with owner-only permissions, since it
// may hold an API key.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
}

// ApplyEnvOverrides lets environment variables win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.API.Model = v
	}
	if v := os.Getenv(EnvOwnerID); v != "" {
		c.User.OwnerID = v
	}
}

// setDefaults fills zero values after file and env merging.
func (c *Config) setDefaults() {
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 60
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = 3
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "auto"
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.API.TimeoutSeconds < 0 {
		return errors.New("api.timeout_seconds must not be negative")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must not be negative")
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be auto, dark, or light, got %q", c.UI.Theme)
	}
	return nil
}

// PersistenceEnabled reports whether the history mirror should run: it
// needs the flag, an owner, and a resolvable database path.
func (c *Config) PersistenceEnabled() bool {
	return c.Persistence.Enabled && c.User.OwnerID != ""
}

// DatabasePath resolves the history database location.
func (c *Config) DatabasePath() (string, error) {
	if c.Persistence.DatabasePath != "" {
		return c.Persistence.DatabasePath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// ensureSecurePermissions tightens the config file to owner-only, since it
// may hold an API key. Best effort.
func ensureSecurePermissions(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm() != 0600 {
		os.Chmod(path, 0600)
	}
}

// Summary returns a redacted one-line description for status output.
func (c *Config) Summary() string {
	key := "not set"
	if c.API.Key != "" {
		key = "set (" + strconv.Itoa(len(c.API.Key)) + " chars)"
	}
	persistence := "disabled"
	if c.PersistenceEnabled() {
		persistence = "enabled"
	}
	return "api key " + key + ", persistence " + persistence + ", theme " + c.UI.Theme
}
