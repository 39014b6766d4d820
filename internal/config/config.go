package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mbahwiryo/storefront/internal/email"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Email    EmailConfig    `mapstructure:"email"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Security SecurityConfig `mapstructure:"security"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds transactional email configuration
type EmailConfig struct {
	// Provider is the vendor to send through: "resend", "sendgrid" or "mailgun"
	Provider string `mapstructure:"provider"`
	// APIKey is the vendor credential. Never logged.
	APIKey string `mapstructure:"api_key"`
	// FromAddress is the default sender
	FromAddress string `mapstructure:"from_address"`
	// AdminAddress receives the new-order alert
	AdminAddress string `mapstructure:"admin_address"`
	// Timeout bounds each vendor call
	Timeout time.Duration `mapstructure:"timeout"`
	// BaseURL overrides the vendor API base URL
	BaseURL string        `mapstructure:"base_url"`
	Mailgun MailgunConfig `mapstructure:"mailgun"`
}

// MailgunConfig holds Mailgun-specific settings
type MailgunConfig struct {
	Domain string `mapstructure:"domain"`
	// Region is "us" or "eu"
	Region string `mapstructure:"region"`
}

// StoreConfig holds the shop identity printed in emails
type StoreConfig struct {
	Brand           string `mapstructure:"brand"`
	SupportWhatsApp string `mapstructure:"support_whatsapp"`
	SupportEmail    string `mapstructure:"support_email"`
	BusinessHours   string `mapstructure:"business_hours"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
}

// RateLimitingConfig holds rate limiting configuration. Redis is only
// required when rate limiting is enabled.
type RateLimitingConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// CORSConfig holds the origins allowed to post orders from a browser
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Dispatcher builds the email dispatcher configuration
func (c *Config) Dispatcher() email.Config {
	baseURL := c.Email.BaseURL
	vendor := email.ParseVendor(c.Email.Provider)
	if baseURL == "" && vendor == email.VendorMailgun && strings.EqualFold(c.Email.Mailgun.Region, "eu") {
		baseURL = email.MailgunEUBaseURL
	}

	return email.Config{
		Vendor:        vendor,
		Credential:    c.Email.APIKey,
		DefaultSender: c.Email.FromAddress,
		Timeout:       c.Email.Timeout,
		MailgunDomain: c.Email.Mailgun.Domain,
		BaseURL:       baseURL,
	}
}

// StoreInfo builds the shop identity used by the email templates
func (c *Config) StoreInfo(now time.Time) email.StoreInfo {
	return email.StoreInfo{
		Brand:           c.Store.Brand,
		SupportWhatsApp: c.Store.SupportWhatsApp,
		SupportEmail:    c.Store.SupportEmail,
		BusinessHours:   c.Store.BusinessHours,
		Year:            now.Year(),
	}
}

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration into the given viper instance
func LoadWith(v *viper.Viper) (*Config, error) {
	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront")

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// bindLegacyEnv accepts the variable names used by the original storefront
// deployment. The prefixed name is tried first.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"email.provider":       {"STOREFRONT_EMAIL_PROVIDER", "EMAIL_PROVIDER"},
		"email.api_key":        {"STOREFRONT_EMAIL_API_KEY", "RESEND_API_KEY", "SENDGRID_API_KEY", "MAILGUN_API_KEY"},
		"email.from_address":   {"STOREFRONT_EMAIL_FROM_ADDRESS", "FROM_EMAIL"},
		"email.admin_address":  {"STOREFRONT_EMAIL_ADMIN_ADDRESS", "ADMIN_EMAIL"},
		"email.mailgun.domain": {"STOREFRONT_EMAIL_MAILGUN_DOMAIN", "MAILGUN_DOMAIN"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Email defaults
	v.SetDefault("email.provider", "resend")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.from_address", "noreply@singkongkejumbahwiryo.com")
	v.SetDefault("email.admin_address", "admin@singkongkejumbahwiryo.com")
	v.SetDefault("email.timeout", "15s")
	v.SetDefault("email.base_url", "")
	v.SetDefault("email.mailgun.domain", "")
	v.SetDefault("email.mailgun.region", "us")

	// Store defaults
	v.SetDefault("store.brand", "Singkong Keju Mbah Wiryo")
	v.SetDefault("store.support_whatsapp", "+6282147566278")
	v.SetDefault("store.support_email", "halo@singkongkejumbahwiryo.com")
	v.SetDefault("store.business_hours", "08.00 - 20.00 WIB")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limiting defaults
	v.SetDefault("security.rate_limiting.enabled", false)
	v.SetDefault("security.rate_limiting.limit", 10)
	v.SetDefault("security.rate_limiting.window", "10m")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}
