// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityGateway = (*FakeIdentityGateway)(nil)
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
)

// FakeIdentityGateway simulates the identity provider with deterministic ids.
// Set the *Func fields to override behavior; call counters record invocations.
type FakeIdentityGateway struct {
	VerifyFunc  func(ctx context.Context, email, secret string) (domainauth.Session, error)
	CreateFunc  func(ctx context.Context, email, secret string) (domainauth.Identity, error)
	CurrentFunc func(ctx context.Context, sessionID string) (domainauth.Session, bool, error)
	EndFunc     func(ctx context.Context, sessionID string) error

	// Sessions backs the default Current/End behavior.
	Sessions *MemorySessionStore
	// IdentityID is returned by default Verify/Create calls.
	IdentityID string

	mu           sync.Mutex
	VerifyCalls  int
	CreateCalls  int
	CurrentCalls int
	EndCalls     int
	callCount    int
}

// NewFakeIdentityGateway creates a gateway fake that verifies any credentials as identityID.
func NewFakeIdentityGateway(identityID string) *FakeIdentityGateway {
	return &FakeIdentityGateway{
		Sessions:   NewMemorySessionStore(),
		IdentityID: identityID,
	}
}

func (g *FakeIdentityGateway) VerifyCredentials(ctx context.Context, email, secret string) (domainauth.Session, error) {
	g.mu.Lock()
	g.VerifyCalls++
	g.callCount++
	n := g.callCount
	g.mu.Unlock()

	if g.VerifyFunc != nil {
		return g.VerifyFunc(ctx, email, secret)
	}

	sess := domainauth.Session{
		ID:         fmt.Sprintf("session-%d", n),
		IdentityID: g.IdentityID,
		Email:      email,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	if err := g.store().Save(ctx, sess); err != nil {
		return domainauth.Session{}, err
	}
	return sess, nil
}

func (g *FakeIdentityGateway) CreateIdentity(ctx context.Context, email, secret string) (domainauth.Identity, error) {
	g.mu.Lock()
	g.CreateCalls++
	g.mu.Unlock()

	if g.CreateFunc != nil {
		return g.CreateFunc(ctx, email, secret)
	}
	return domainauth.Identity{ID: g.IdentityID, Email: email}, nil
}

func (g *FakeIdentityGateway) CurrentSession(ctx context.Context, sessionID string) (domainauth.Session, bool, error) {
	g.mu.Lock()
	g.CurrentCalls++
	g.mu.Unlock()

	if g.CurrentFunc != nil {
		return g.CurrentFunc(ctx, sessionID)
	}
	sess, err := g.store().Get(ctx, sessionID)
	if errors.Is(err, domainauth.ErrSessionNotFound) {
		return domainauth.Session{}, false, nil
	}
	if err != nil {
		return domainauth.Session{}, false, err
	}
	return sess, true, nil
}

func (g *FakeIdentityGateway) EndSession(ctx context.Context, sessionID string) error {
	g.mu.Lock()
	g.EndCalls++
	g.mu.Unlock()

	if g.EndFunc != nil {
		return g.EndFunc(ctx, sessionID)
	}
	return g.store().Delete(ctx, sessionID)
}

func (g *FakeIdentityGateway) store() *MemorySessionStore {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Sessions == nil {
		g.Sessions = NewMemorySessionStore()
	}
	return g.Sessions
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || id == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	if sess.Expired(time.Now()) {
		delete(m.sessions, id)
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
