package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth configuration
	JWTSecret     string
	SessionSecret string
	// AdminUsers are the usernames granted the user-management capability
	AdminUsers []string

	// CORSOrigins lists the browser origins allowed to call the API
	CORSOrigins []string

	// LoginRateLimit is the number of login attempts allowed per client per minute
	LoginRateLimit int

	// Attachment archive; disabled when S3BucketName is empty
	S3BucketName string
	AWSRegion    string

	LogLevel string
}

var defaultCORSOrigins = []string{"http://localhost:5173", "http://frontend:5173"}

const defaultLoginRateLimit = 10

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadSettings(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.SessionSecret = os.Getenv("TEST_SESSION_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.RedisDB = 0

	return nil
}

var secretFiles = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"session_secret",
	"redis_password",
	"db_host",
	"db_port",
	"db_name",
	"db_ssl_mode",
	"redis_host",
	"redis_port",
	"redis_url",
	"server_port",
	"server_host",
}

// loadDevConfig loads configuration for development environment. Every secret
// file must be present.
func loadDevConfig(cfg *Config) error {
	secrets := make(map[string]string)
	for _, name := range secretFiles {
		content, err := os.ReadFile(filepath.Join(secretsDir(), name))
		if err != nil {
			return fmt.Errorf("failed to read secret %s: %w", name, err)
		}
		secrets[name] = strings.TrimSpace(string(content))
	}
	applySecrets(cfg, func(name string) string { return secrets[name] })
	return nil
}

// loadProdConfig loads configuration for production environment using only Docker secrets
func loadProdConfig(cfg *Config) {
	applySecrets(cfg, readSecret)
}

func applySecrets(cfg *Config, get func(string) string) {
	cfg.ServerPort = get("server_port")
	cfg.ServerHost = get("server_host")
	cfg.DBHost = get("db_host")
	cfg.DBPort = get("db_port")
	cfg.DBUser = get("db_user")
	cfg.DBPassword = get("db_password")
	cfg.DBName = get("db_name")
	cfg.DBSSLMode = get("db_ssl_mode")
	cfg.RedisHost = get("redis_host")
	cfg.RedisPort = get("redis_port")
	cfg.RedisPassword = get("redis_password")
	cfg.RedisDB = 0
	cfg.JWTSecret = get("jwt_secret")
	cfg.SessionSecret = get("session_secret")
	cfg.RedisURL = get("redis_url")
}

// loadSettings reads the non-secret settings shared by every environment
func loadSettings(cfg *Config) error {
	cfg.AdminUsers = splitList(os.Getenv("ADMIN_USERS"))

	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = defaultCORSOrigins
	}

	cfg.LoginRateLimit = defaultLoginRateLimit
	if raw := os.Getenv("LOGIN_RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return ValidationError{Field: "LOGIN_RATE_LIMIT", Message: fmt.Sprintf("must be a non-negative integer, got %q", raw)}
		}
		cfg.LoginRateLimit = limit
	}

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return nil
}

// ArchiveEnabled reports whether admitted attachments are copied to S3
func (c *Config) ArchiveEnabled() bool {
	return c.S3BucketName != ""
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func secretsDir() string {
	if dir := os.Getenv("SECRETS_DIR"); dir != "" {
		return dir
	}
	return "/run/secrets"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	if data, err := os.ReadFile(filepath.Join(secretsDir(), name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
