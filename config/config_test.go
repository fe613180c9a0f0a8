package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 1333
  adminToken: secret
telegram:
  token: bot-token
database:
  uri: mongodb://localhost:27017/fanhub
team:
  name: FURIA
  twitterHandle: FURIA
news:
  fetchLimit: 10
  refreshMinutes: 15
players:
  file: ./players.json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 1333 || cfg.Server.AdminToken != "secret" {
		t.Errorf("Unexpected server config: %+v", cfg.Server)
	}
	if cfg.Telegram.Token != "bot-token" {
		t.Errorf("Unexpected telegram token %q", cfg.Telegram.Token)
	}
	if cfg.Team.TwitterHandle != "FURIA" {
		t.Errorf("Unexpected team handle %q", cfg.Team.TwitterHandle)
	}
	if cfg.News.FetchLimit != 10 || cfg.News.RefreshMinutes != 15 {
		t.Errorf("Unexpected news config: %+v", cfg.News)
	}
	if cfg.Players.File != "./players.json" {
		t.Errorf("Unexpected players file %q", cfg.Players.File)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: bot-token
database:
  uri: mongodb://localhost:27017/fanhub
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.News.FetchLimit != 5 {
		t.Errorf("Expected default fetch limit 5, got %d", cfg.News.FetchLimit)
	}
	if cfg.News.RefreshMinutes != 30 {
		t.Errorf("Expected default refresh interval 30, got %d", cfg.News.RefreshMinutes)
	}
	if cfg.Players.File != "./config/players.json" {
		t.Errorf("Expected default players file, got %q", cfg.Players.File)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Errorf("Expected error for missing config file")
	}
}

func TestLoadConfigMalformedYaml(t *testing.T) {
	path := writeConfig(t, "server: [not: valid")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("Expected error for malformed yaml")
	}
}
