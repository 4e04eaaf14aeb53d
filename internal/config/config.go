package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Site     SiteConfig     `mapstructure:"site"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Security SecurityConfig `mapstructure:"security"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Mail     MailConfig     `mapstructure:"mail"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// SiteConfig holds public site metadata used in pages and emails
type SiteConfig struct {
	// Name is the public site name used in emails and page titles
	Name string `mapstructure:"name"`
	// BaseURL is the public origin of the site, e.g. "https://aeon.example.com"
	BaseURL string `mapstructure:"base_url"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
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

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
}

// RateLimitingConfig holds rate limiting configuration
type RateLimitingConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	DefaultLimit  int    `mapstructure:"default_limit"`
	DefaultWindow string `mapstructure:"default_window"`
}

// AdminConfig holds the single-admin authentication configuration
type AdminConfig struct {
	// Email identifies the site owner; inquiry notifications go here
	Email string `mapstructure:"email"`
	// PasswordHash is the argon2id hash of the admin password
	PasswordHash string `mapstructure:"password_hash"`
	// SessionSecret signs admin session tokens
	SessionSecret string `mapstructure:"session_secret"`
	// SessionTTL is how long an admin session stays valid
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// MailConfig holds outbound email configuration.
// Exactly one credential source should be configured: either the Google
// OAuth offline-token values, or the managed connector. The offline path
// takes priority when both are present.
type MailConfig struct {
	// SenderName is the display name for the From header
	SenderName string `mapstructure:"sender_name"`
	// SenderAddress is the mailbox emails are sent from
	SenderAddress string `mapstructure:"sender_address"`
	// Google holds the self-hosted OAuth credential source
	Google GoogleOAuthConfig `mapstructure:"google"`
	// Connector holds the managed-connector credential source
	Connector ConnectorConfig `mapstructure:"connector"`
}

// GoogleOAuthConfig holds OAuth2 client credentials plus a long-lived
// refresh token for the sender mailbox.
type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// ConnectorConfig holds the managed-connector source: a hosting-provided
// broker that keeps the mailbox credential refreshed on our behalf.
type ConnectorConfig struct {
	Host  string `mapstructure:"host"`
	Token string `mapstructure:"token"`
}

// OfflineConfigured reports whether all three offline-token values are set.
func (c MailConfig) OfflineConfigured() bool {
	return c.Google.ClientID != "" && c.Google.ClientSecret != "" && c.Google.RefreshToken != ""
}

// ConnectorConfigured reports whether the managed-connector source is set.
func (c MailConfig) ConnectorConfigured() bool {
	return c.Connector.Host != "" && c.Connector.Token != ""
}

// From returns the default From display string, e.g. "Aeon Team <hi@aeon.com>".
func (c MailConfig) From() string {
	if c.SenderName == "" {
		return c.SenderAddress
	}
	return fmt.Sprintf("%s <%s>", c.SenderName, c.SenderAddress)
}

// StorageConfig holds S3-compatible object storage configuration for
// uploaded images and PDFs.
type StorageConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// Endpoint overrides the AWS endpoint for S3-compatible services
	Endpoint string `mapstructure:"endpoint"`
	// PublicURL is the base URL uploaded files are served from
	PublicURL string `mapstructure:"public_url"`
	PathStyle bool   `mapstructure:"path_style"`
}

// Enabled reports whether object storage is configured.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/aeon")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("AEON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Site defaults
	v.SetDefault("site.name", "Aeon")
	v.SetDefault("site.base_url", "http://localhost:8080")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "aeon")
	v.SetDefault("database.user", "aeon")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 25)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Security defaults
	v.SetDefault("security.rate_limiting.enabled", true)
	v.SetDefault("security.rate_limiting.default_limit", 100)
	v.SetDefault("security.rate_limiting.default_window", "1m")

	// Admin defaults
	v.SetDefault("admin.session_ttl", "12h")

	// Mail defaults
	v.SetDefault("mail.sender_name", "Aeon Team")
	v.SetDefault("mail.sender_address", "")

	// Storage defaults
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.path_style", false)
}
