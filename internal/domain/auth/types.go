// Package auth contains domain-level types for authentication, sessions and the
// administrator predicate. It is pure and free of framework/adapter concerns.
package auth

import (
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound is returned by session stores when no live session exists for an id.
var ErrSessionNotFound = errors.New("session not found")

// DefaultAdminRoleName is the sentinel role whose presence grants administrator status.
const DefaultAdminRoleName = "Administrador do Sistema"

// Identity represents the principal issued by the identity gateway.
// The core only relies on ID; Email is informational.
type Identity struct {
	ID    string
	Email string
}

// Session is the gateway session record persisted for an authenticated identity.
// ID is an opaque session identifier handed back to the caller.
type Session struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// GatewayError is a failure reported by the identity gateway.
// Status is the transport status code when one is available (0 otherwise).
type GatewayError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	switch {
	case e.Code != "" && e.Status != 0:
		return fmt.Sprintf("identity gateway: %s (%d): %s", e.Code, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("identity gateway (%d): %s", e.Status, e.Message)
	default:
		return "identity gateway: " + e.Message
	}
}

func (e *GatewayError) Unwrap() error { return e.Cause }
