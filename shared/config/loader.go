// Package config loads the service configuration from config.yml with
// environment variable overrides for credentials.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the full service configuration.
type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
	} `yaml:"app"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	// Secrets are deliberately simple shared-string checks; see the admin
	// and site-config handlers for how each one is consumed.
	Secrets struct {
		AdminPassword  string `yaml:"admin_password"`
		ConfigPanelKey string `yaml:"config_panel_key"`
		PreviewToken   string `yaml:"preview_token"`
		JWTSigningKey  string `yaml:"jwt_signing_key"`
	} `yaml:"secrets"`

	SMTP struct {
		Host       string `yaml:"host"`
		Port       int    `yaml:"port"`
		Username   string `yaml:"username"`
		Password   string `yaml:"password"`
		From       string `yaml:"from"`
		OwnerEmail string `yaml:"owner_email"`
	} `yaml:"smtp"`

	Chat struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"chat"`

	Uploads struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"uploads"`

	Checkout struct {
		ProcessingDelayMS int `yaml:"processing_delay_ms"`
	} `yaml:"checkout"`
}

// Load reads and parses the configuration file, then overlays credentials
// from the environment. A missing file is not an error; env vars and
// defaults carry the service.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.yml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	overlayEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func overlayEnv(cfg *Config) {
	setIfPresent(&cfg.Mongo.URI, "MONGO_URI")
	setIfPresent(&cfg.Mongo.Database, "MONGO_DB")
	setIfPresent(&cfg.Chat.APIKey, "OPENAI_API_KEY")
	setIfPresent(&cfg.Chat.Model, "OPENAI_MODEL")
	setIfPresent(&cfg.Uploads.APIKey, "IMAGE_HOST_API_KEY")
	setIfPresent(&cfg.Secrets.AdminPassword, "ADMIN_PASSWORD")
	setIfPresent(&cfg.Secrets.ConfigPanelKey, "CONFIG_PANEL_KEY")
	setIfPresent(&cfg.Secrets.PreviewToken, "PREVIEW_TOKEN")
	setIfPresent(&cfg.Secrets.JWTSigningKey, "JWT_SIGNING_KEY")
	setIfPresent(&cfg.Server.Port, "PORT")
	setIfPresent(&cfg.SMTP.Password, "SMTP_PASSWORD")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "portofolio-site"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "portofolio"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-4o-mini"
	}
	if cfg.Checkout.ProcessingDelayMS == 0 {
		cfg.Checkout.ProcessingDelayMS = 1200
	}
}

// MissingCredentials lists the external credentials that are absent. None of
// them is required to boot; the features backed by them degrade instead.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Chat.APIKey == "" {
		missing = append(missing, "chat api key")
	}
	if c.Uploads.APIKey == "" {
		missing = append(missing, "image host api key")
	}
	if c.Secrets.JWTSigningKey == "" {
		missing = append(missing, "jwt signing key")
	}
	return missing
}
