package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration. Values load
// from the YAML file first and environment variables override per-field via
// the env tags, so no credential ever lives in source.
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath    string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL        string `yaml:"base_url" env:"SERVER_BASE_URL"`
		MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES"`
	} `yaml:"server"`

	Drive struct {
		APIKey   string `yaml:"api_key" env:"DRIVE_API_KEY"`
		FolderID string `yaml:"folder_id" env:"DRIVE_FOLDER_ID"`
		// BaseURL overrides the Google endpoint, for tests and proxies.
		BaseURL string `yaml:"base_url" env:"DRIVE_BASE_URL"`
	} `yaml:"drive"`

	Catalog struct {
		// RefreshTTL bounds how often the Drive listing is refetched,
		// as a Go duration string ("5m", "30s").
		RefreshTTL string `yaml:"refresh_ttl" env:"CATALOG_REFRESH_TTL"`
		// DisplayLimit caps the unfiltered catalog view; 0 disables the cap.
		DisplayLimit int `yaml:"display_limit" env:"CATALOG_DISPLAY_LIMIT"`
	} `yaml:"catalog"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		ToEmail   string `yaml:"to_email" env:"SMTP_TO_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; env vars can carry everything.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.MaxUploadBytes = 10 << 20 // 10MB

	config.Catalog.RefreshTTL = "5m"
	config.Catalog.DisplayLimit = 9

	config.SMTP.Port = 587

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	if _, err := time.ParseDuration(config.Catalog.RefreshTTL); err != nil {
		return fmt.Errorf("catalog refresh TTL is not a valid duration: %w", err)
	}
	if config.Catalog.DisplayLimit < 0 {
		return fmt.Errorf("catalog display limit must not be negative")
	}
	if config.Drive.FolderID == "" {
		return fmt.Errorf("drive folder id must be configured")
	}
	return nil
}
