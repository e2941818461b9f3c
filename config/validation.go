package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredField names a configuration value and where it comes from in each
// kind of environment
type requiredField struct {
	EnvVar string
	Secret string
	value  func(*Config) string
}

var requiredFields = []requiredField{
	{EnvVar: "SERVER_PORT", Secret: "server_port", value: func(c *Config) string { return c.ServerPort }},
	{EnvVar: "DB_HOST", Secret: "db_host", value: func(c *Config) string { return c.DBHost }},
	{EnvVar: "DB_PORT", Secret: "db_port", value: func(c *Config) string { return c.DBPort }},
	{EnvVar: "DB_USER", Secret: "db_user", value: func(c *Config) string { return c.DBUser }},
	{EnvVar: "TEST_DB_PASSWORD", Secret: "db_password", value: func(c *Config) string { return c.DBPassword }},
	{EnvVar: "DB_NAME", Secret: "db_name", value: func(c *Config) string { return c.DBName }},
	{EnvVar: "TEST_JWT_SECRET", Secret: "jwt_secret", value: func(c *Config) string { return c.JWTSecret }},
	{EnvVar: "TEST_SESSION_SECRET", Secret: "session_secret", value: func(c *Config) string { return c.SessionSecret }},
}

// minSessionSecretLength matches the 32-byte HMAC key gorilla/securecookie expects
const minSessionSecretLength = 32

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string
	for _, field := range requiredFields {
		if field.value(cfg) != "" {
			continue
		}
		if env == CI {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", field.EnvVar))
		} else {
			errors = append(errors, fmt.Sprintf("required secret %s is not set", field.Secret))
		}
	}

	if cfg.SessionSecret != "" && len(cfg.SessionSecret) < minSessionSecretLength {
		errors = append(errors, fmt.Sprintf("session secret must be at least %d characters", minSessionSecretLength))
	}

	if env == Production {
		if len(cfg.AdminUsers) == 0 {
			errors = append(errors, "ADMIN_USERS must name at least one user in production")
		}
		if cfg.ArchiveEnabled() && cfg.AWSRegion == "" {
			errors = append(errors, "AWS_REGION is required when S3_BUCKET_NAME is set")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
