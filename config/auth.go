package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses an OIDC provider as the identity gateway.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses configured dev accounts (for development only).
	AuthModeMock AuthMode = "mock"
)

const (
	defaultSessionTTL    = 8 * time.Hour
	defaultSessionPrefix = "session:"
	defaultAdminRoleName = "Administrador do Sistema"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OIDC identity gateway configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	Scope        string `env:"SCOPE"         envDefault:"openid email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	// SignupURL receives account creation requests; registration is disabled when empty.
	SignupURL string `env:"SIGNUP_URL"`
}

// Configured reports whether the fields needed for login are present.
func (c OAuthConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.DiscoveryURL != ""
}

// DevAuthConfig controls mock/dev authentication accounts.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	// Accounts is a ';'-separated list of email:password[:identity-id] entries.
	Accounts string `env:"ACCOUNTS" envDefault:"dev@example.com:dev"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity gateway to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminRoleName is the role whose holders are administrators.
	AdminRoleName string `env:"AUTH_ADMIN_ROLE_NAME" envDefault:"Administrador do Sistema"`

	// DefaultLocationID is the primary location assigned to self-registered users.
	DefaultLocationID string `env:"AUTH_DEFAULT_LOCATION_ID"`

	// SessionTTL bounds gateway sessions that carry no expiry of their own.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`

	// SessionPrefix is the Redis key prefix for sessions.
	SessionPrefix string `env:"AUTH_SESSION_PREFIX" envDefault:"session:"`
}

// Sanitize trims values and restores defaults for blank or invalid settings.
func (c *AuthConfig) Sanitize() {
	c.AdminRoleName = strings.TrimSpace(c.AdminRoleName)
	if c.AdminRoleName == "" {
		c.AdminRoleName = defaultAdminRoleName
	}
	c.DefaultLocationID = strings.TrimSpace(c.DefaultLocationID)
	if c.SessionTTL <= 0 {
		c.SessionTTL = defaultSessionTTL
	}
	if c.SessionPrefix = strings.TrimSpace(c.SessionPrefix); c.SessionPrefix == "" {
		c.SessionPrefix = defaultSessionPrefix
	}
	c.OAuth.ClientID = strings.TrimSpace(c.OAuth.ClientID)
	c.OAuth.DiscoveryURL = strings.TrimSpace(c.OAuth.DiscoveryURL)
	c.OAuth.SignupURL = strings.TrimSpace(c.OAuth.SignupURL)
}

// DevAccount is one mock identity accepted in AUTH_MODE=mock.
type DevAccount struct {
	Email    string
	Password string
	ID       string
}

// ParseDevAccounts parses email:password[:id] entries separated by ';'.
// A missing id is derived from the email so it is stable across restarts.
func ParseDevAccounts(raw string) ([]DevAccount, error) {
	var (
		accounts []DevAccount
		seen     = make(map[string]struct{})
	)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		acct, err := parseDevAccount(entry)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(acct.Email)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("dev account %q listed more than once", acct.Email)
		}
		seen[key] = struct{}{}
		accounts = append(accounts, acct)
	}
	if len(accounts) == 0 {
		return nil, errors.New("no dev accounts configured")
	}
	return accounts, nil
}

func parseDevAccount(entry string) (DevAccount, error) {
	parts := strings.Split(entry, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return DevAccount{}, fmt.Errorf("dev account %q: expected email:password[:id]", entry)
	}
	acct := DevAccount{
		Email:    strings.TrimSpace(parts[0]),
		Password: parts[1],
	}
	if _, err := mail.ParseAddress(acct.Email); err != nil {
		return DevAccount{}, fmt.Errorf("dev account %q: invalid email: %w", acct.Email, err)
	}
	if acct.Password == "" {
		return DevAccount{}, fmt.Errorf("dev account %q: password is required", acct.Email)
	}
	if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
		id, err := uuid.Parse(strings.TrimSpace(parts[2]))
		if err != nil {
			return DevAccount{}, fmt.Errorf("dev account %q: id must be a UUID: %w", acct.Email, err)
		}
		acct.ID = id.String()
	} else {
		acct.ID = DevIdentityID(acct.Email)
	}
	return acct, nil
}

// DevIdentityID derives the stable identity id used for a dev account without an explicit id.
func DevIdentityID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(strings.TrimSpace(email)))).String()
}
