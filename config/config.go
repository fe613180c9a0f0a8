package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port       int    `yaml:"port"`
		AdminToken string `yaml:"adminToken"`
	} `yaml:"server"`

	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Twitter struct {
		BearerToken string `yaml:"bearerToken"`
	} `yaml:"twitter"`

	Instagram struct {
		AccessToken string `yaml:"accessToken"`
	} `yaml:"instagram"`

	Team struct {
		Name          string `yaml:"name"`
		TwitterHandle string `yaml:"twitterHandle"`
	} `yaml:"team"`

	News struct {
		FetchLimit     int `yaml:"fetchLimit"`
		RefreshMinutes int `yaml:"refreshMinutes"`
	} `yaml:"news"`

	Players struct {
		File string `yaml:"file"`
	} `yaml:"players"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if cfg.News.FetchLimit <= 0 {
		cfg.News.FetchLimit = 5
	}
	if cfg.News.RefreshMinutes <= 0 {
		cfg.News.RefreshMinutes = 30
	}
	if cfg.Players.File == "" {
		cfg.Players.File = "./config/players.json"
	}

	return &cfg, nil
}
