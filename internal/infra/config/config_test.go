package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "0.0.0.0"
  port: "8080"
  base_url: "http://localhost:8080"
telegram_bot:
  token: "test-token"
  username: "doralyzer_bot"
  report_chat_id: 42
assessment:
  catalog_path: "data/catalog.json"
  default_locale: "es"
storage:
  type: "file"
  path: "data/session.json"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.TelegramBot.Token)
	assert.Equal(t, int64(42), cfg.TelegramBot.ReportChatID)
	assert.Equal(t, "es", cfg.Assessment.DefaultLocale)
	assert.Equal(t, "file", cfg.Storage.Type)
	assert.False(t, cfg.DatabaseEnabled())

	// Defaults fill the omitted fields.
	assert.Equal(t, "polling", cfg.TelegramBot.Mode)
	assert.Equal(t, ":8443", cfg.TelegramBot.ListenAddr)
	assert.Equal(t, 10, cfg.TelegramBot.PollIntervalSeconds)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram_bot:
  token: "yaml-token"
  report_chat_id: 1
storage:
  type: "memory"
`)

	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("REPORT_CHAT_ID", "77")
	t.Setenv("STORAGE_TYPE", "file")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.TelegramBot.Token)
	assert.Equal(t, int64(77), cfg.TelegramBot.ReportChatID)
	assert.Equal(t, "file", cfg.Storage.Type)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	path := writeConfig(t, `
telegram_bot:
  report_chat_id: 1
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigRequiresReportChat(t *testing.T) {
	path := writeConfig(t, `
telegram_bot:
  token: "test-token"
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDatabaseEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.DatabaseEnabled())
	cfg.Database.Host = "localhost"
	assert.True(t, cfg.DatabaseEnabled())
}
