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

// DefaultMatchFormSubmitURL is the public Google Form that backs the match history sheet.
const DefaultMatchFormSubmitURL = "https://docs.google.com/forms/d/e/1FAIpQLScguPsS2TOxaABYLtbCDZ5zPXec2av9AI2kPI2JFwYqmghBYQ/formResponse"

// Config holds all configuration for the application.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"-"`

	// Database Configuration
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"-"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Identity provider (Discord) and administrator
	AdminUserID       string `mapstructure:"ADMIN_USER_ID"`
	DiscordAPIBaseURL string `mapstructure:"DISCORD_API_BASE_URL"`

	// Moxfield
	MoxfieldAPIBaseURL        string        `mapstructure:"MOXFIELD_API_BASE_URL"`
	MoxfieldUserAgent         string        `mapstructure:"MOXFIELD_USER_AGENT"`
	MoxfieldRequestsPerSecond float64       `mapstructure:"MOXFIELD_REQUESTS_PER_SECOND"`
	MoxfieldCacheTTL          time.Duration `mapstructure:"-"`

	// Match history form
	MatchFormSubmitURL     string `mapstructure:"MATCH_FORM_SUBMIT_URL"`
	MatchSubmissionLenient bool   `mapstructure:"MATCH_SUBMISSION_LENIENT"`

	// Applied to every outbound call (Discord, Moxfield, Google Forms)
	ExternalCallTimeout time.Duration `mapstructure:"-"`

	// Redis (optional Moxfield lookup cache)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Cron Jobs
	DeckAuditJobSchedule string `mapstructure:"DECK_AUDIT_JOB_SCHEDULE"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "4000")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "toski")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("ADMIN_USER_ID", "")
	v.SetDefault("DISCORD_API_BASE_URL", "https://discord.com/api")

	v.SetDefault("MOXFIELD_API_BASE_URL", "https://api2.moxfield.com")
	v.SetDefault("MOXFIELD_USER_AGENT", "toski-backend")
	v.SetDefault("MOXFIELD_REQUESTS_PER_SECOND", 0)
	v.SetDefault("MOXFIELD_CACHE_TTL_SECONDS", 600)

	v.SetDefault("MATCH_FORM_SUBMIT_URL", DefaultMatchFormSubmitURL)
	v.SetDefault("MATCH_SUBMISSION_LENIENT", false)

	v.SetDefault("EXTERNAL_CALL_TIMEOUT_SECONDS", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DECK_AUDIT_JOB_SCHEDULE", "")
	v.SetDefault("METRICS_ENABLED", true)

	v.AutomaticEnv()
	// PORT is what most hosting platforms inject; DATABASE_URL likewise.
	_ = v.BindEnv("SERVER_PORT", "PORT", "SERVER_PORT")
	_ = v.BindEnv("DB_SOURCE", "DATABASE_URL", "DB_SOURCE")

	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.MoxfieldCacheTTL = time.Duration(v.GetInt("MOXFIELD_CACHE_TTL_SECONDS")) * time.Second
	cfg.ExternalCallTimeout = time.Duration(v.GetInt("EXTERNAL_CALL_TIMEOUT_SECONDS")) * time.Second

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.AdminUserID = strings.TrimSpace(cfg.AdminUserID)
	cfg.DiscordAPIBaseURL = strings.TrimRight(cfg.DiscordAPIBaseURL, "/")
	cfg.MoxfieldAPIBaseURL = strings.TrimRight(cfg.MoxfieldAPIBaseURL, "/")

	if cfg.DBSource == "" && cfg.DBDriver == "postgres" {
		cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var problems []string
	switch c.DBDriver {
	case "postgres":
	case "sqlite":
		if c.DBSource == "" {
			problems = append(problems, "DB_SOURCE is required when DB_DRIVER=sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.DBDriver))
	}
	if c.ServerPort == "" {
		problems = append(problems, "SERVER_PORT must not be empty")
	}
	if c.ExternalCallTimeout <= 0 {
		problems = append(problems, "EXTERNAL_CALL_TIMEOUT_SECONDS must be positive")
	}
	if c.MoxfieldRequestsPerSecond < 0 {
		problems = append(problems, "MOXFIELD_REQUESTS_PER_SECOND must not be negative")
	}
	if c.MatchFormSubmitURL == "" {
		problems = append(problems, "MATCH_FORM_SUBMIT_URL must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// AdminConfigured reports whether admin-only operations can ever succeed.
func (c *Config) AdminConfigured() bool {
	return c.AdminUserID != ""
}
