package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is built once at
// startup and passed into constructors; nothing reads the environment after Load.
type Config struct {
	Environment string
	Port        string

	// BaseURL is the public URL of this service, used to build invite links.
	BaseURL string

	// AuthToken guards POST /invite. Empty disables the check.
	AuthToken string

	DirectoryAPIURL   string
	DirectoryAPIToken string
	DirectoryTimeout  time.Duration

	// RedirectURL receives redeemers of a valid code (?code= appended).
	RedirectURL string
	// GroupFullURL receives redeemers whose target group is at capacity.
	GroupFullURL string

	// DefaultRoleID is the directory role assigned to newly created invitations.
	DefaultRoleID string
	// MaxUsersPerGroup is the membership count at which a group stops
	// accepting redemptions.
	MaxUsersPerGroup int

	Email EmailConfig
}

// EmailConfig configures the invite-link mailer.
type EmailConfig struct {
	Provider           string // "ses" or "noop"
	FromAddress        string
	FromName           string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment
	// variables, so a missing file is only a warning.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:       env,
		Port:              getenv("PORT", "3000"),
		BaseURL:           getenv("BASE_URL", "http://localhost:3000"),
		AuthToken:         os.Getenv("AUTH_TOKEN"),
		DirectoryAPIURL:   getenv("DIRECTORY_API_URL", "https://api.heartbeat.chat/v0"),
		DirectoryAPIToken: os.Getenv("DIRECTORY_API_TOKEN"),
		DirectoryTimeout:  time.Duration(getenvInt("DIRECTORY_TIMEOUT_SECONDS", 10)) * time.Second,
		RedirectURL:       getenv("REDIRECT_URL", "https://insiders.worshipsoundguy.com/invitation"),
		GroupFullURL:      getenv("GROUP_FULL_URL", "https://worshipsoundguy.com/insiders-team-limit-reached/"),
		DefaultRoleID:     getenv("DEFAULT_USER_ROLE_ID", "5187dabd-cb0d-4ab6-80b1-8fcd494131ea"),
		MaxUsersPerGroup:  getenvInt("MAX_USERS_PER_GROUP", 5),
		Email: EmailConfig{
			Provider:           getenv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:          getenv("SES_REGION", "us-east-1"),
			SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
		},
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, s, fallback)
		return fallback
	}
	return v
}
