// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`
	CORSOrigin    string        `mapstructure:"CORS_ORIGIN"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Session / Cookie Configuration
	SessionCookieName string        `mapstructure:"SESSION_COOKIE_NAME"`
	SessionLifetime   time.Duration `mapstructure:"SESSION_LIFETIME_DAYS"`
	CookieDomain      string        `mapstructure:"COOKIE_DOMAIN"`

	// Identity Provider Configuration
	IdentityProviderURL string        `mapstructure:"IDENTITY_PROVIDER_URL"`
	IdentityProviderKey string        `mapstructure:"IDENTITY_PROVIDER_KEY"`
	ProviderTimeout     time.Duration `mapstructure:"PROVIDER_TIMEOUT_SECONDS"`
	RegisterRedirectURL string        `mapstructure:"REGISTER_REDIRECT"`

	// GitHub OAuth Configuration
	GitHubAPIURL            string `mapstructure:"GITHUB_API_URL"`
	AllowGitHubRegistration bool   `mapstructure:"ALLOW_GITHUB_REGISTRATION"`
}

// IsProduction reports whether the server runs in release mode. Cookie
// security attributes key off this.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// DSN builds the GORM postgres connection string from the individual DB
// parameters.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "converse_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_COOKIE_NAME", "qid")
	v.SetDefault("SESSION_LIFETIME_DAYS", 7)
	v.SetDefault("COOKIE_DOMAIN", "")

	v.SetDefault("IDENTITY_PROVIDER_URL", "")
	v.SetDefault("IDENTITY_PROVIDER_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT_SECONDS", 10)
	v.SetDefault("REGISTER_REDIRECT", "")

	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("ALLOW_GITHUB_REGISTRATION", false)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.SessionLifetime = time.Duration(v.GetInt("SESSION_LIFETIME_DAYS")) * 24 * time.Hour
	cfg.ProviderTimeout = time.Duration(v.GetInt("PROVIDER_TIMEOUT_SECONDS")) * time.Second

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.IdentityProviderURL) == "" {
		return nil, fmt.Errorf("FATAL: IDENTITY_PROVIDER_URL is not set. Credential checks cannot be delegated without it")
	}
	if strings.TrimSpace(cfg.IdentityProviderKey) == "" {
		return nil, fmt.Errorf("FATAL: IDENTITY_PROVIDER_KEY is not set")
	}
	if cfg.IsProduction() && strings.TrimSpace(cfg.CookieDomain) == "" {
		return nil, fmt.Errorf("FATAL: COOKIE_DOMAIN must be set in release mode")
	}

	return &cfg, nil
}
