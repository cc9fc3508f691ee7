package config_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-accounts/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.Development, cfg.Env)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"localhost", "127.0.0.1"}, cfg.Security.AllowedHosts)
	assert.NotEmpty(t, cfg.JWT.SigningKey)
}

func TestLoadUnknownEnvFallsBack(t *testing.T) {
	t.Setenv("APP_ENV", "staging")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.Development, cfg.Env)
}

func TestLoadTestProfile(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.Test, cfg.Env)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.Name, ":memory:")
	assert.Equal(t, "console", cfg.Mail.Backend)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("ALLOWED_HOSTS", "api.example.com")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoadProductionRequiresAllowedHosts(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("ALLOWED_HOSTS", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLOWED_HOSTS")
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("ALLOWED_HOSTS", "api.example.com, admin.example.com")
	t.Setenv("DB_PASSWORD", "pg-pass")
	t.Setenv("EMAIL_HOST_USER", "mailer@example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.Production, cfg.Env)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "prod-secret", cfg.JWT.SigningKey)
	assert.Equal(t, []string{"api.example.com", "admin.example.com"}, cfg.Security.AllowedHosts)
	assert.Equal(t, "smtp", cfg.Mail.Backend)
	assert.True(t, cfg.Security.FrameDeny)
	assert.True(t, cfg.Security.ContentNoSniff)
	assert.False(t, cfg.Security.SSLRedirect)
	assert.Equal(t, 14, cfg.BcryptCost)
}

func TestLoadProductionSSLRedirect(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("ALLOWED_HOSTS", "api.example.com")
	t.Setenv("SECURE_SSL_REDIRECT", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Security.SSLRedirect)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("JWT_ISSUER", "custom-issuer")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, "custom-issuer", cfg.JWT.Issuer)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDatabaseDSN(t *testing.T) {
	pg := config.DatabaseConfig{
		Driver:   "postgres",
		Name:     "app",
		User:     "svc",
		Password: "secret",
		Host:     "db",
		Port:     "5432",
	}
	assert.Equal(t, "postgres://svc:secret@db:5432/app?sslmode=disable", pg.DSN())

	lite := config.DatabaseConfig{Driver: "sqlite", Name: "file::memory:?cache=shared"}
	assert.Equal(t, "file::memory:?cache=shared", lite.DSN())
}

func TestJWTConfigSatisfiesTokenConfig(t *testing.T) {
	j := config.JWTConfig{
		SigningKey: "k",
		Issuer:     "iss",
		Audience:   []string{"aud"},
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}

	assert.Equal(t, "k", j.GetSigningKey())
	assert.Equal(t, "iss", j.GetIssuer())
	assert.Equal(t, []string{"aud"}, j.GetAudience())
	assert.Equal(t, time.Minute, j.GetAccessTokenTTL())
	assert.Equal(t, time.Hour, j.GetRefreshTokenTTL())
}
