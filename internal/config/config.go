package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for configuration values
const (
	DefaultPort         = "8080"
	DefaultDBDriver     = "memory"
	DefaultJWTTTL       = 24 * time.Hour
	DefaultBaseURL      = "https://example.com"
	DefaultSitemapPath  = "public/sitemap.xml"
	DefaultSitemapCron  = "0 3 * * *"
	DefaultRateFeedURL  = "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"
	DefaultRateMargin   = 2.0
	DefaultRateCacheTTL = 60 * time.Minute
	DefaultSMTPPort     = "587"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	DBDriver string
	DBConn   string

	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string

	SiteBaseURL   string
	SitemapPath   string
	SitemapCron   string
	SitemapRoutes string

	RateFeedURL  string
	RateMargin   float64
	RateCacheTTL time.Duration
	RedisURL     string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	NotifyEmail  string

	CORSOrigins []string
}

// NewConfig loads configuration from environment variables (and .env if present)
func NewConfig() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	cfg := &Config{
		Port:     getEnv("PORT", DefaultPort),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		DBDriver: getEnv("DB_DRIVER", DefaultDBDriver),
		DBConn:   getEnv("DB_CONN", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getEnvDuration("JWT_TTL_HOURS", time.Hour, DefaultJWTTTL),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SiteBaseURL:   strings.TrimRight(getEnv("SITE_BASE_URL", DefaultBaseURL), "/"),
		SitemapPath:   getEnv("SITEMAP_PATH", DefaultSitemapPath),
		SitemapCron:   getEnv("SITEMAP_CRON", DefaultSitemapCron),
		SitemapRoutes: getEnv("SITEMAP_ROUTES", ""),

		RateFeedURL:  getEnv("RATE_FEED_URL", DefaultRateFeedURL),
		RateMargin:   getEnvFloat("RATE_FEED_MARGIN", DefaultRateMargin),
		RateCacheTTL: getEnvDuration("RATE_CACHE_TTL_MINUTES", time.Minute, DefaultRateCacheTTL),
		RedisURL:     getEnv("REDIS_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", DefaultSMTPPort),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that configuration values are usable
func Validate(cfg *Config) error {
	switch cfg.DBDriver {
	case "memory":
	case "postgres", "sqlite3", "sqlite":
		if cfg.DBConn == "" {
			return fmt.Errorf("DB_CONN is required for driver %s", cfg.DBDriver)
		}
	default:
		return fmt.Errorf("DB_DRIVER must be postgres, sqlite or memory, got %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if !strings.HasPrefix(cfg.SiteBaseURL, "http://") && !strings.HasPrefix(cfg.SiteBaseURL, "https://") {
		return fmt.Errorf("SITE_BASE_URL must be an absolute http(s) URL, got %q", cfg.SiteBaseURL)
	}
	if cfg.RateMargin < 0 {
		return fmt.Errorf("RATE_FEED_MARGIN must be non-negative, got %f", cfg.RateMargin)
	}
	if cfg.RateCacheTTL <= 0 {
		return fmt.Errorf("RATE_CACHE_TTL_MINUTES must be positive")
	}
	return nil
}

// MailEnabled reports whether change notifications can be sent
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != "" && c.NotifyEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, unit time.Duration, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * unit
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
