package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
)

// IdentityGateway verifies credentials and issues sessions against the external identity provider.
//
// Failures originating at the provider are returned as *domainauth.GatewayError
// so callers can classify them by status code or message.
type IdentityGateway interface {
	// VerifyCredentials checks email/secret and opens a session for the verified identity.
	VerifyCredentials(ctx context.Context, email, secret string) (domainauth.Session, error)

	// CreateIdentity registers a new identity and returns its gateway-issued id.
	CreateIdentity(ctx context.Context, email, secret string) (domainauth.Identity, error)

	// CurrentSession returns the live session for sessionID; ok is false when there is none.
	CurrentSession(ctx context.Context, sessionID string) (sess domainauth.Session, ok bool, err error)

	// EndSession invalidates the session. Ending an unknown session is not an error.
	EndSession(ctx context.Context, sessionID string) error
}

// SessionStore persists and retrieves gateway sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
