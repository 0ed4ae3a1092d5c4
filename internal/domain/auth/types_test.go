package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, Session{}.Expired(now), "zero expiry never expires")
	assert.False(t, Session{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.False(t, Session{ExpiresAt: now}.Expired(now))
	assert.True(t, Session{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}

func TestGatewayError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "identity gateway: invalid_grant (400): bad password",
		(&GatewayError{Status: 400, Code: "invalid_grant", Message: "bad password"}).Error())
	assert.Equal(t, "identity gateway (503): unavailable",
		(&GatewayError{Status: 503, Message: "unavailable"}).Error())
	assert.Equal(t, "identity gateway: timeout", (&GatewayError{Message: "timeout"}).Error())
}

func TestGatewayError_UnwrapAndAs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("login: %w", &GatewayError{Message: "deadline", Cause: context.DeadlineExceeded})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "deadline", gwErr.Message)

	assert.NotErrorIs(t, err, errors.New("deadline"))
}
