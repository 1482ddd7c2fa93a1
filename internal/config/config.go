package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath   string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	LLM struct {
		Provider    string `yaml:"provider" env:"LLM_PROVIDER"`
		APIKey      string `yaml:"api_key" env:"OPENAI_API_KEY"`
		BaseURL     string `yaml:"base_url" env:"OPENAI_BASE_URL"`
		Model       string `yaml:"model" env:"LLM_MODEL"`
		VisionModel string `yaml:"vision_model" env:"LLM_VISION_MODEL"`
		ImageModel  string `yaml:"image_model" env:"LLM_IMAGE_MODEL"`
	} `yaml:"llm"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		GuestTTL string `yaml:"guest_ttl" env:"REDIS_GUEST_TTL"`
	} `yaml:"redis"`

	Portal struct {
		DefaultPageSize int    `yaml:"default_page_size" env:"PORTAL_DEFAULT_PAGE_SIZE"`
		MaxPageSize     int    `yaml:"max_page_size" env:"PORTAL_MAX_PAGE_SIZE"`
		AdminEmail      string `yaml:"admin_email" env:"PORTAL_ADMIN_EMAIL"`
		AdminPassword   string `yaml:"admin_password" env:"PORTAL_ADMIN_PASSWORD"`
	} `yaml:"portal"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; environment variables alone are enough in containers.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(reflect.ValueOf(config), ""); err != nil {
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

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "studyportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "studyportal.app"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.LLM.Provider = "openai"
	config.LLM.Model = "gpt-4o-mini"
	config.LLM.VisionModel = "gpt-4o"
	config.LLM.ImageModel = "dall-e-3"

	config.Redis.GuestTTL = "720h"

	config.Portal.DefaultPageSize = 12
	config.Portal.MaxPageSize = 60
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime: %w", err)
	}

	if config.Redis.GuestTTL != "" {
		if _, err := time.ParseDuration(config.Redis.GuestTTL); err != nil {
			return fmt.Errorf("invalid redis guest ttl: %w", err)
		}
	}

	switch strings.ToLower(config.LLM.Provider) {
	case "openai":
		if config.LLM.APIKey == "" {
			return fmt.Errorf("llm api key is required for the openai provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown llm provider %q", config.LLM.Provider)
	}

	if config.Portal.DefaultPageSize <= 0 || config.Portal.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if config.Portal.DefaultPageSize > config.Portal.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d", config.Portal.DefaultPageSize, config.Portal.MaxPageSize)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// durationOr parses a duration already checked by validateConfig.
func durationOr(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	return fallback
}

// AccessTokenTTL is the lifetime of issued access tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return durationOr(c.JWT.AccessTokenExpiration, 24*time.Hour)
}

// ConnMaxLifetime bounds how long a pooled database connection is reused.
func (c *Config) ConnMaxLifetime() time.Duration {
	return durationOr(c.Database.ConnMaxLifetime, time.Hour)
}

// GuestTTL is how long an idle guest watchlist is kept.
func (c *Config) GuestTTL() time.Duration {
	return durationOr(c.Redis.GuestTTL, 30*24*time.Hour)
}

// BaseURL returns the public URL the server is reachable at.
func (c *Config) BaseURL() string {
	if c.Server.PublicBaseURL != "" {
		return strings.TrimRight(c.Server.PublicBaseURL, "/")
	}
	return "http://localhost:" + c.Server.Port
}
