package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"secretsanta/internal/domain"
)

// Defaults applied when the matching environment variable is unset.
const (
	DefaultPort           = "8080"
	DefaultMailProvider   = "noop"
	DefaultSMTPPort       = 587
	DefaultRequestTimeout = 30 * time.Second
)

// SESConfig holds the AWS SES credentials for MAIL_PROVIDER=ses.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// SMTPConfig holds the relay settings for MAIL_PROVIDER=smtp.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	DBUrl       string

	MailProvider    string
	MailFromAddress string
	MailFromName    string
	SES             SESConfig
	SMTP            SMTPConfig

	Currency        string
	MaxParticipants int

	JWTSecret          string
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is authoritative and .env is usually absent.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:     env,
		Port:            getenv("PORT", DefaultPort),
		DBUrl:           os.Getenv("DATABASE_URL"),
		MailProvider:    strings.ToLower(getenv("MAIL_PROVIDER", DefaultMailProvider)),
		MailFromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:    getenv("MAIL_FROM_NAME", domain.DefaultFromName),
		SES: SESConfig{
			Region:          os.Getenv("AWS_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		Currency:           getenv("SANTA_CURRENCY", domain.DefaultCurrency),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.SES.InsecureSkipVerify, err = boolEnv("SES_INSECURE_SKIP_VERIFY", false); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = intEnv("SMTP_PORT", DefaultSMTPPort); err != nil {
		return nil, err
	}
	if cfg.MaxParticipants, err = intEnv("SANTA_MAX_PARTICIPANTS", domain.DefaultMaxParticipants); err != nil {
		return nil, err
	}
	if cfg.MaxParticipants < 2 {
		return nil, fmt.Errorf("SANTA_MAX_PARTICIPANTS must be at least 2, got %d", cfg.MaxParticipants)
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", DefaultRequestTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether GO_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, s)
	}
	return v, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, s)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
