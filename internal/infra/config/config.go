package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application settings. Values come from a YAML file,
// with secrets and deployment-specific fields overridable through the
// environment (a local .env file is honored).
type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	TelegramBot struct {
		Token               string `yaml:"token"`
		Username            string `yaml:"username"`
		Mode                string `yaml:"mode"` // "polling" or "webhook"
		WebhookURL          string `yaml:"webhook_url"`
		ListenAddr          string `yaml:"listen_addr"`
		PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
		ReportChatID        int64  `yaml:"report_chat_id"`
	} `yaml:"telegram_bot"`
	Assessment struct {
		CatalogPath   string `yaml:"catalog_path"`
		DefaultLocale string `yaml:"default_locale"`
	} `yaml:"assessment"`
	Storage struct {
		Type string `yaml:"type"` // "memory" or "file"
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Debug bool `yaml:"debug"`
}

// LoadConfig reads the YAML file at path and applies environment
// overrides on top of it.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	if config.TelegramBot.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}
	if config.TelegramBot.ReportChatID == 0 {
		return nil, fmt.Errorf("report chat id is not set")
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		config.TelegramBot.Token = v
	}
	if v := os.Getenv("REPORT_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.TelegramBot.ReportChatID = id
		}
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		config.Storage.Type = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		config.Database.Password = v
	}
	if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		config.Debug = true
	}
}

func applyDefaults(config *Config) {
	if config.TelegramBot.Mode == "" {
		config.TelegramBot.Mode = "polling"
	}
	if config.TelegramBot.ListenAddr == "" {
		config.TelegramBot.ListenAddr = ":8443"
	}
	if config.TelegramBot.PollIntervalSeconds == 0 {
		config.TelegramBot.PollIntervalSeconds = 10
	}
	if config.Assessment.CatalogPath == "" {
		config.Assessment.CatalogPath = "data/catalog.json"
	}
	if config.Assessment.DefaultLocale == "" {
		config.Assessment.DefaultLocale = "en"
	}
	if config.Storage.Type == "" {
		config.Storage.Type = "memory"
	}
	if config.Storage.Path == "" {
		config.Storage.Path = "data/session.json"
	}
}

// DatabaseEnabled reports whether a submission archive database is
// configured.
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Host != ""
}
