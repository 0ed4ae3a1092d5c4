package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID:         id,
		IdentityID: "8d5c7c8e-3f4b-4a7e-9d59-0f2b1c6a7e11",
		Email:      "user@example.com",
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func TestSessionStore_RejectsInvalidSessionsWithoutRedis(t *testing.T) {
	// The client is never contacted for these inputs.
	store := NewSessionStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	ctx := context.Background()

	require.Error(t, store.Save(ctx, domainauth.Session{}))
	require.Error(t, store.Save(ctx, domainauth.Session{ID: "no-expiry"}))
	require.Error(t, store.Save(ctx, testSession("expired", -time.Minute)))

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestNewSessionStoreWithPrefix_DefaultsEmptyPrefix(t *testing.T) {
	store := NewSessionStoreWithPrefix(nil, "")
	assert.Equal(t, DefaultPrefix+"abc", store.key("abc"))

	store = NewSessionStoreWithPrefix(nil, "agenda:session:")
	assert.Equal(t, "agenda:session:abc", store.key("abc"))
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)

	store := NewSessionStore(client)
	ctx := context.Background()
	session := testSession("test-session-1", 30*time.Minute)

	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.IdentityID, retrieved.IdentityID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)

	ttl, err := client.TTL(ctx, DefaultPrefix+"test-session-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 29*time.Minute)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("test-session-delete", 30*time.Minute)))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "test-session-delete"))
}

func TestSessionStore_ExpiredPayloadIsCleanedUp(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStoreWithPrefix(client, "test:")
	ctx := context.Background()

	// Write a payload whose ExpiresAt has passed while the key itself is still alive.
	stale := testSession("stale", -time.Second)
	require.NoError(t, client.Set(ctx, "test:stale",
		`{"id":"stale","identity_id":"x","email":"e","expires_at":"`+stale.ExpiresAt.Format(time.RFC3339Nano)+`"}`,
		time.Minute).Err())

	_, err := store.Get(ctx, "stale")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	exists, err := client.Exists(ctx, "test:stale").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
