package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrMissingJWTSecret     = errors.New("JWT_SECRET or JWT_SECRET_SSM_PARAMETER must be set")
	ErrDefaultAdminPassword = errors.New("ADMIN_PASSWORD must be changed from its default outside development")
)

const defaultAdminPassword = "admin123"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ReadTimeoutSeconds  int `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	// Database: postgres (DATABASE_URL), supa (SUPABASE_DB_* parts) or sqlite (SQLITE_PATH)
	DBType              string         `env:"DB_TYPE" envDefault:"postgres"`
	DatabaseURL         string         `env:"DATABASE_URL"`
	DatabaseReplicaURLs []string       `env:"DATABASE_REPLICA_URLS" envSeparator:","`
	SQLitePath          string         `env:"SQLITE_PATH" envDefault:"./data/portfolio.db"`
	Supabase            SupabaseConfig `envPrefix:"SUPABASE_DB_"`

	JWTSecret             string `env:"JWT_SECRET"`
	JWTSecretSSMParameter string `env:"JWT_SECRET_SSM_PARAMETER"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	RedisURL string `env:"REDIS_URL"` // Optional, enables real page view counting

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	// Contact notifications
	ResendAPIKey        string   `env:"RESEND_API_KEY"`
	ResendFromEmail     string   `env:"RESEND_FROM_EMAIL"`
	ContactNotifyEmails []string `env:"CONTACT_NOTIFY_EMAILS" envSeparator:","`
	TwilioAccountSID    string   `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken     string   `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber    string   `env:"TWILIO_FROM_NUMBER"`
	ContactNotifyPhone  string   `env:"CONTACT_NOTIFY_PHONE"`
}

type SupabaseConfig struct {
	Host     string `env:"HOST"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	Port     string `env:"PORT" envDefault:"5432"`
}

// DSN builds a libpq connection string for a Supabase hosted database.
func (s SupabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		s.Host, s.User, s.Password, s.Name, s.Port)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DBType = strings.ToLower(strings.TrimSpace(cfg.DBType))
	switch cfg.DBType {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when DB_TYPE=postgres")
		}
	case "supa":
		if cfg.Supabase.Host == "" || cfg.Supabase.User == "" || cfg.Supabase.Name == "" {
			return nil, errors.New("SUPABASE_DB_HOST, SUPABASE_DB_USER and SUPABASE_DB_NAME are required when DB_TYPE=supa")
		}
	case "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}

	if !cfg.IsDevelopment() && cfg.AdminPassword == defaultAdminPassword {
		return nil, ErrDefaultAdminPassword
	}

	cfg.AcceptedOrigins = trimAll(cfg.AcceptedOrigins)
	cfg.DatabaseReplicaURLs = trimAll(cfg.DatabaseReplicaURLs)
	cfg.ContactNotifyEmails = trimAll(cfg.ContactNotifyEmails)

	return cfg, nil
}

// ResolveJWTSecret makes sure JWTSecret is populated, reading it from the
// parameter store when only JWT_SECRET_SSM_PARAMETER is configured.
func (c *Config) ResolveJWTSecret(ctx context.Context, store ParameterStore) error {
	if c.JWTSecret != "" {
		return nil
	}
	if c.JWTSecretSSMParameter == "" {
		return ErrMissingJWTSecret
	}

	if store == nil {
		var err error
		if store, err = NewSSMParameterStore(ctx); err != nil {
			return err
		}
	}

	secret, err := store.GetParameter(ctx, c.JWTSecretSSMParameter)
	if err != nil {
		return fmt.Errorf("reading JWT secret from %s: %w", c.JWTSecretSSMParameter, err)
	}
	if secret == "" {
		return ErrMissingJWTSecret
	}
	c.JWTSecret = secret
	return nil
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr binds on all interfaces for external access.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port)
}

func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// EmailNotificationsEnabled returns true if Resend is configured with at least one recipient.
func (c Config) EmailNotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.ResendFromEmail != "" && len(c.ContactNotifyEmails) > 0
}

// SMSNotificationsEnabled returns true if Twilio is configured.
func (c Config) SMSNotificationsEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != "" && c.ContactNotifyPhone != ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
