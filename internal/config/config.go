package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultContactRange   = "Contact Submissions!A:K"
	defaultFreeTrialRange = "Free Trial Requests!A:G"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// SheetsConfig holds the Google Sheets mirror settings.
type SheetsConfig struct {
	SpreadsheetID       string
	ContactRange        string
	FreeTrialRange      string
	ServiceAccountEmail string
	PrivateKey          string
	ClientID            string
}

// SMTPConfig holds the outbound mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SendGridConfig holds the SendGrid API settings.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port               string
	MongoURI           string
	MongoDatabase      string
	DatabaseURL        string
	Sheets             SheetsConfig
	SMTP               SMTPConfig
	SendGrid           SendGridConfig
	AdminEmail         string
	PhoneDefaultRegion string
	ExportFilePrefix   string
	RateLimitSubmit    RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "ignite-website"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Sheets: SheetsConfig{
			SpreadsheetID:       os.Getenv("GOOGLE_SHEET_ID"),
			ContactRange:        getEnv("GOOGLE_SHEET_RANGE", defaultContactRange),
			FreeTrialRange:      getEnv("GOOGLE_FREE_TRIAL_RANGE", defaultFreeTrialRange),
			ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
			PrivateKey:          unescapeNewlines(os.Getenv("GOOGLE_PRIVATE_KEY")),
			ClientID:            os.Getenv("GOOGLE_CLIENT_ID"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
		},
		SendGrid: SendGridConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromEmail: os.Getenv("SENDGRID_FROM"),
		},
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		PhoneDefaultRegion: strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "EG")),
		ExportFilePrefix:   getEnv("EXPORT_FILE_PREFIX", "ignite-submissions"),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid SMTP_PORT value: %q", os.Getenv("SMTP_PORT"))
	}
	cfg.SMTP.Port = port

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SUBMIT", "20/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMIT value: %w", err)
	}
	cfg.RateLimitSubmit = rl

	return cfg, nil
}

// SheetsEnabled reports whether a spreadsheet identifier is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.SpreadsheetID != ""
}

// SMTPEnabled reports whether lead notifications can go out over SMTP.
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != "" && c.AdminEmail != ""
}

// SendGridEnabled reports whether lead notifications can go out over SendGrid.
func (c *Config) SendGridEnabled() bool {
	return c.SendGrid.APIKey != "" && c.AdminEmail != ""
}

// EmailEnabled reports whether any notification transport is usable.
func (c *Config) EmailEnabled() bool {
	return c.SMTPEnabled() || c.SendGridEnabled()
}

// MissingSheetsEnv lists the spreadsheet variables that are not set.
func (c *Config) MissingSheetsEnv() []string {
	missing := make([]string, 0, 4)
	if c.Sheets.SpreadsheetID == "" {
		missing = append(missing, "GOOGLE_SHEET_ID")
	}
	if c.Sheets.ServiceAccountEmail == "" {
		missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	}
	if c.Sheets.PrivateKey == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}
	if c.Sheets.ClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	return missing
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// Private keys pasted into a single env line carry literal "\n" sequences.
func unescapeNewlines(value string) string {
	return strings.ReplaceAll(value, `\n`, "\n")
}
