package devauth

// Package devauth provides a simple, config-driven IdentityGateway for local development.

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/ports"
)

var _ ports.IdentityGateway = (*Gateway)(nil)

// Account is a fixed identity accepted by the dev gateway.
type Account struct {
	ID       string
	Email    string
	Password string
}

// Config controls the dev gateway behavior.
// Sessions is required; SessionDuration defaults to 8h when zero.
type Config struct {
	Accounts        []Account
	Sessions        ports.SessionStore
	SessionDuration time.Duration
}

// Gateway implements ports.IdentityGateway against an in-process account list.
// Sessions are persisted in the configured store so they survive across CLI invocations
// when the store is Redis-backed.
type Gateway struct {
	sessions        ports.SessionStore
	sessionDuration time.Duration

	mu       sync.RWMutex
	accounts map[string]Account // keyed by lower-cased email
}

// NewGateway constructs a dev gateway from Config.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("dev auth: session store is required")
	}
	dur := cfg.SessionDuration
	if dur <= 0 {
		dur = 8 * time.Hour
	}
	g := &Gateway{
		sessions:        cfg.Sessions,
		sessionDuration: dur,
		accounts:        make(map[string]Account, len(cfg.Accounts)),
	}
	for _, a := range cfg.Accounts {
		if a.ID == "" || a.Email == "" {
			return nil, fmt.Errorf("dev auth: account %q requires id and email", a.Email)
		}
		g.accounts[emailKey(a.Email)] = a
	}
	return g, nil
}

// VerifyCredentials checks the password against the configured account and opens a session.
func (g *Gateway) VerifyCredentials(ctx context.Context, email, secret string) (domainauth.Session, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Session{}, err
	}
	g.mu.RLock()
	acct, ok := g.accounts[emailKey(email)]
	g.mu.RUnlock()

	if !ok || subtle.ConstantTimeCompare([]byte(acct.Password), []byte(secret)) != 1 {
		return domainauth.Session{}, &domainauth.GatewayError{
			Status:  http.StatusBadRequest,
			Code:    "invalid_credentials",
			Message: "invalid login credentials",
		}
	}

	id, err := randomString(32)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("generate session id: %w", err)
	}
	sess := domainauth.Session{
		ID:         id,
		IdentityID: acct.ID,
		Email:      acct.Email,
		ExpiresAt:  time.Now().Add(g.sessionDuration),
	}
	if err := g.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// CreateIdentity adds an account for email. Accounts created at runtime live only
// as long as the process.
func (g *Gateway) CreateIdentity(ctx context.Context, email, secret string) (domainauth.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Identity{}, err
	}
	email = strings.TrimSpace(email)
	key := emailKey(email)

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.accounts[key]; exists {
		return domainauth.Identity{}, &domainauth.GatewayError{
			Status:  http.StatusConflict,
			Code:    "email_exists",
			Message: "email already registered",
		}
	}
	acct := Account{ID: uuid.NewString(), Email: email, Password: secret}
	g.accounts[key] = acct
	return domainauth.Identity{ID: acct.ID, Email: acct.Email}, nil
}

// CurrentSession returns the stored session, treating missing or expired ones as absent.
func (g *Gateway) CurrentSession(ctx context.Context, sessionID string) (domainauth.Session, bool, error) {
	if sessionID == "" {
		return domainauth.Session{}, false, nil
	}
	sess, err := g.sessions.Get(ctx, sessionID)
	if errors.Is(err, domainauth.ErrSessionNotFound) {
		return domainauth.Session{}, false, nil
	}
	if err != nil {
		return domainauth.Session{}, false, err
	}
	return sess, true, nil
}

// EndSession deletes the session. Unknown ids are ignored.
func (g *Gateway) EndSession(ctx context.Context, sessionID string) error {
	return g.sessions.Delete(ctx, sessionID)
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least n base64 URL chars
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	return s[:n], nil
}
