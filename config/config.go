package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects the runtime profile.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// DatabaseConfig holds the persistence target.
type DatabaseConfig struct {
	Driver   string // sqlite | postgres
	Name     string
	User     string
	Password string
	Host     string
	Port     string
}

// DSN renders the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			d.User, d.Password, d.Host, d.Port, d.Name)
	default:
		return d.Name
	}
}

// JWTConfig holds token issuance parameters.
type JWTConfig struct {
	SigningKey string
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (j JWTConfig) GetSigningKey() string            { return j.SigningKey }
func (j JWTConfig) GetIssuer() string                { return j.Issuer }
func (j JWTConfig) GetAudience() []string            { return j.Audience }
func (j JWTConfig) GetAccessTokenTTL() time.Duration { return j.AccessTTL }
func (j JWTConfig) GetRefreshTokenTTL() time.Duration {
	return j.RefreshTTL
}

// MailConfig holds the outbound mail transport.
type MailConfig struct {
	Backend  string // console | smtp
	Host     string
	Port     int
	User     string
	Password string
	UseTLS   bool
	From     string
}

// SecurityConfig carries the HTTP security flags that tighten up in
// production.
type SecurityConfig struct {
	AllowedHosts   []string
	HSTSSeconds    int
	SSLRedirect    bool
	FrameDeny      bool
	ContentNoSniff bool
}

// Config is built once at process start and passed explicitly to the
// components that need it. No ambient global state.
type Config struct {
	Env      Environment
	Debug    bool
	HTTPAddr string
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	Security SecurityConfig
	// BcryptCost is lowered for the test profile so suites run quickly.
	BcryptCost int
}

// Load reads APP_ENV and assembles the profile for that environment,
// optionally sourcing a .env file first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := Environment(getEnv("APP_ENV", string(Development)))

	var cfg *Config
	switch env {
	case Production:
		cfg = production()
	case Test:
		cfg = test()
	default:
		env = Development
		cfg = development()
	}
	cfg.Env = env

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach runtime. Production
// requires an explicit signing secret and at least one allowed host.
func (c *Config) Validate() error {
	if c.Env == Production {
		if c.JWT.SigningKey == "" {
			return fmt.Errorf("config: SECRET_KEY must be set in production")
		}
		if len(c.Security.AllowedHosts) == 0 {
			return fmt.Errorf("config: ALLOWED_HOSTS must be set in production")
		}
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}

	return nil
}

func development() *Config {
	return &Config{
		Debug:    true,
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Name:     getEnv("DB_NAME", "file:accounts.db?cache=shared"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		JWT: JWTConfig{
			SigningKey: getEnv("SECRET_KEY", "dev-insecure-secret"),
			Issuer:     getEnv("JWT_ISSUER", "go-accounts"),
			Audience:   splitList(os.Getenv("JWT_AUDIENCE")),
			AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Mail: MailConfig{
			Backend: "console",
			From:    getEnv("MAIL_FROM", "noreply@localhost"),
		},
		Security: SecurityConfig{
			AllowedHosts: []string{"localhost", "127.0.0.1"},
		},
		BcryptCost: 14,
	}
}

func test() *Config {
	cfg := development()
	cfg.Debug = false
	cfg.Database.Driver = "sqlite"
	cfg.Database.Name = "file::memory:?cache=shared"
	cfg.JWT.SigningKey = getEnv("SECRET_KEY", "test-secret")
	cfg.JWT.AccessTTL = getEnvDuration("JWT_ACCESS_TTL", 5*time.Minute)
	cfg.Mail.Backend = "console"
	// MD5-speed hashing keeps the suite within timeouts.
	cfg.BcryptCost = 4
	return cfg
}

func production() *Config {
	return &Config{
		Debug:    false,
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Name:     getEnv("DB_NAME", "postgres"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     getEnv("DB_HOST", "db"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		JWT: JWTConfig{
			SigningKey: os.Getenv("SECRET_KEY"),
			Issuer:     getEnv("JWT_ISSUER", "go-accounts"),
			Audience:   splitList(os.Getenv("JWT_AUDIENCE")),
			AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Mail: MailConfig{
			Backend:  "smtp",
			Host:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("EMAIL_PORT", 587),
			User:     os.Getenv("EMAIL_HOST_USER"),
			Password: os.Getenv("EMAIL_HOST_PASSWORD"),
			UseTLS:   getEnvBool("EMAIL_USE_TLS", true),
			From:     getEnv("MAIL_FROM", "noreply@localhost"),
		},
		Security: SecurityConfig{
			AllowedHosts:   splitList(os.Getenv("ALLOWED_HOSTS")),
			HSTSSeconds:    getEnvInt("SECURE_HSTS_SECONDS", 0),
			SSLRedirect:    getEnvBool("SECURE_SSL_REDIRECT", false),
			FrameDeny:      true,
			ContentNoSniff: true,
		},
		BcryptCost: 14,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
