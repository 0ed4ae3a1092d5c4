package config

import (
	"log/slog"
	"net/url"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}))
	cfg.Sanitize()

	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Equal(t, "Administrador do Sistema", cfg.Auth.AdminRoleName)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "session:", cfg.Auth.SessionPrefix)
	assert.Equal(t, "openid email", cfg.Auth.OAuth.Scope)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.False(t, cfg.Auth.OAuth.Configured())
}

func TestAppConfig_FromEnvironment(t *testing.T) {
	var cfg AppConfig
	err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{
		"AUTH_MODE":                "MOCK",
		"AUTH_ADMIN_ROLE_NAME":     "  Secretário  ",
		"AUTH_DEFAULT_LOCATION_ID": " 3b241101-e2bb-4255-8caf-4136c566a962 ",
		"AUTH_SESSION_TTL":         "30m",
		"OAUTH_CLIENT_ID":          "agenda",
		"OAUTH_CLIENT_SECRET":      "s3cret",
		"OAUTH_DISCOVERY_URL":      "https://id.example.org",
		"DEV_AUTH_ACCOUNTS":        "a@x.org:pw",
		"DB_HOST":                  "db",
		"REDIS_URI":                "redis://cache:6379/0",
		"LOG_LEVEL":                "DEBUG",
	}})
	require.NoError(t, err)
	cfg.Sanitize()

	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, "Secretário", cfg.Auth.AdminRoleName)
	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", cfg.Auth.DefaultLocationID)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.True(t, cfg.Auth.OAuth.Configured())
	assert.Equal(t, "a@x.org:pw", cfg.Auth.DevAuth.Accounts)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URI)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var m AuthMode
	require.NoError(t, m.UnmarshalText([]byte(" OAuth ")))
	assert.Equal(t, AuthModeOAuth, m)

	err := m.UnmarshalText([]byte("saml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options: oauth, mock")
}

func TestAuthConfig_SanitizeRestoresDefaults(t *testing.T) {
	cfg := AuthConfig{AdminRoleName: "   ", SessionTTL: -time.Second, SessionPrefix: " "}
	cfg.Sanitize()

	assert.Equal(t, defaultAdminRoleName, cfg.AdminRoleName)
	assert.Equal(t, defaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, defaultSessionPrefix, cfg.SessionPrefix)
}

func TestParseDevAccounts(t *testing.T) {
	accts, err := ParseDevAccounts(" admin@x.org:secret:3b241101-e2bb-4255-8caf-4136c566a962 ; user@x.org:pw ;")
	require.NoError(t, err)
	require.Len(t, accts, 2)

	assert.Equal(t, DevAccount{
		Email:    "admin@x.org",
		Password: "secret",
		ID:       "3b241101-e2bb-4255-8caf-4136c566a962",
	}, accts[0])
	assert.Equal(t, "user@x.org", accts[1].Email)
	assert.Equal(t, DevIdentityID("USER@x.org"), accts[1].ID)
}

func TestParseDevAccounts_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":           " ; ",
		"missing secret":  "a@x.org:",
		"bad email":       "not-an-email:pw",
		"bad id":          "a@x.org:pw:42",
		"too many fields": "a@x.org:pw:id:extra",
		"duplicate":       "a@x.org:pw;A@x.org:pw2",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDevAccounts(raw)
			assert.Error(t, err)
		})
	}
}

func TestLogConfig_Sanitize(t *testing.T) {
	c := LogConfig{Level: "verbose", Format: "XML"}
	c.Sanitize()
	assert.Equal(t, "info", c.Level)
	assert.Equal(t, "json", c.Format)

	c = LogConfig{Level: " Warn ", Format: "text"}
	c.Sanitize()
	assert.Equal(t, slog.LevelWarn, c.SlogLevel())
	assert.Equal(t, "text", c.Format)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db.internal", Port: 6543, User: "agenda", Password: "p@ss/word", Name: "agenda", SSLMode: "require"}

	u, err := url.Parse(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:6543", u.Host)
	assert.Equal(t, "/agenda", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/word", pw)
}
