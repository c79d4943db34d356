package config

import "time"

// Config holds all application configuration.
// It is constructed once at process start and passed by reference into the
// constructors that need it; business logic never reads ambient globals.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the token and credential-hashing settings.
//
// TokenSecret is the base HMAC secret. Purpose-scoped tokens (registration
// confirmation, password reset) are signed with a secret derived from it by
// appending a fragment of mutable entity state, which makes them
// self-invalidating once that state changes.
type AuthConfig struct {
	TokenSecret                 string `mapstructure:"token_secret"                  validate:"required,min=32"`
	TokenIssuer                 string `mapstructure:"token_issuer"                  validate:"required"`
	LoginTokenTTLMinutes        int    `mapstructure:"login_token_ttl_minutes"       validate:"required,gt=0"`
	ConfirmationTokenTTLMinutes int    `mapstructure:"confirmation_token_ttl_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                   validate:"required,gte=10,lte=31"`
}

// LoginTokenTTL returns the login token lifetime as a duration.
func (c AuthConfig) LoginTokenTTL() time.Duration {
	return time.Duration(c.LoginTokenTTLMinutes) * time.Minute
}

// ConfirmationTokenTTL returns the confirmation/reset token lifetime as a
// duration.
func (c AuthConfig) ConfirmationTokenTTL() time.Duration {
	return time.Duration(c.ConfirmationTokenTTLMinutes) * time.Minute
}

// SMTPConfig contains the settings for outbound notification mail.
// BaseURL is the externally reachable server address used to build
// confirmation and password-reset links.
type SMTPConfig struct {
	Host           string `mapstructure:"host"            validate:"required"`
	Port           int    `mapstructure:"port"            validate:"required,gt=0,lt=65536"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	From           string `mapstructure:"from"            validate:"required"`
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// Timeout returns the per-send SMTP timeout as a duration.
func (c SMTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
