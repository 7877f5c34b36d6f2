// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.API.TimeoutSeconds)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.True(t, cfg.Persistence.Enabled)
	assert.False(t, cfg.PersistenceEnabled(), "no owner means no persistence")
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://example.edu/v1"
model = "genie-chat-mini"
timeout_seconds = 30

[user]
name = "Priya"
owner_id = "user_123"

[ui]
theme = "dark"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.edu/v1", cfg.API.BaseURL)
	assert.Equal(t, "genie-chat-mini", cfg.API.Model)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "Priya", cfg.User.Name)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.PersistenceEnabled())
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nkey = \"file-key\"\n"), 0600))

	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvOwnerID, "user_env")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "user_env", cfg.User.OwnerID)
}

func TestLoadFrom_InvalidTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"sepia\"\n"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveTo_RoundTripAndPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.Key = "sk-test"
	cfg.User.Name = "Sam"
	require.NoError(t, cfg.SaveTo(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config may hold an API key")

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", loaded.API.Key)
	assert.Equal(t, "Sam", loaded.User.Name)
}

func TestLoadFrom_TightensLoosePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := LoadFrom(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfig_DatabasePathOverride(t *testing.T) {
	cfg := Default()
	cfg.Persistence.DatabasePath = "/tmp/custom.db"
	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}
