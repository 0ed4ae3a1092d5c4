package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/mocks"
)

const testIdentityID = "8d5c7c8e-3f4b-4a7e-9d59-0f2b1c6a7e11"

func newResolver(t *testing.T) (*mocks.MockUserProfileRepository, *AuthorizationResolver) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	profiles := mocks.NewMockUserProfileRepository(ctrl)
	resolver := NewAuthorizationResolver(AuthorizationResolverOptions{Profiles: profiles})
	return profiles, resolver
}

func profileWithRoles(roles ...string) *model.UserProfile {
	return &model.UserProfile{
		ID:                testIdentityID,
		Email:             "admin@x.org",
		Name:              "Admin",
		PrimaryLocationID: "loc-1",
		LocationName:      "Regional Vespasiano",
		RoleNames:         roles,
	}
}

func TestAuthorizationResolver_Resolve_EmptyIdentity(t *testing.T) {
	t.Parallel()
	_, resolver := newResolver(t)

	for _, id := range []string{"", "   "} {
		user, err := resolver.Resolve(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, user)
	}
}

func TestAuthorizationResolver_Resolve_AdminFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		roles     []string
		wantAdmin bool
	}{
		{name: "exact sentinel", roles: []string{"Administrador do Sistema"}, wantAdmin: true},
		{name: "mixed case and trailing space", roles: []string{"aDMINISTRADOR do SISTEMA "}, wantAdmin: true},
		{name: "among other roles", roles: []string{"Diácono", "administrador do sistema"}, wantAdmin: true},
		{name: "regular user", roles: []string{"Diácono", "Cooperador"}, wantAdmin: false},
		{name: "no roles", roles: nil, wantAdmin: false},
		{name: "similar but different", roles: []string{"Administrador"}, wantAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			profiles, resolver := newResolver(t)
			profiles.EXPECT().
				GetWithRoles(gomock.Any(), testIdentityID).
				Return(profileWithRoles(tt.roles...), nil).
				Times(1)

			user, err := resolver.Resolve(context.Background(), testIdentityID)
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, tt.wantAdmin, user.IsAdmin)
		})
	}
}

func TestAuthorizationResolver_Resolve_MapsProfile(t *testing.T) {
	t.Parallel()
	profiles, resolver := newResolver(t)

	profiles.EXPECT().
		GetWithRoles(gomock.Any(), testIdentityID).
		Return(profileWithRoles(" Diácono", "Administrador do Sistema", "Diácono"), nil)

	user, err := resolver.Resolve(context.Background(), testIdentityID)
	require.NoError(t, err)

	assert.Equal(t, &model.User{
		ID:                testIdentityID,
		Email:             "admin@x.org",
		Name:              "Admin",
		PrimaryLocationID: "loc-1",
		LocationName:      "Regional Vespasiano",
		IsAdmin:           true,
		Roles:             []string{"Administrador do Sistema", "Diácono"},
	}, user)
}

func TestAuthorizationResolver_Resolve_Idempotent(t *testing.T) {
	t.Parallel()
	profiles, resolver := newResolver(t)

	profiles.EXPECT().
		GetWithRoles(gomock.Any(), testIdentityID).
		Return(profileWithRoles("ADMINISTRADOR DO SISTEMA"), nil).
		Times(2)

	first, err := resolver.Resolve(context.Background(), testIdentityID)
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), testIdentityID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAuthorizationResolver_Resolve_CustomSentinel(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	profiles := mocks.NewMockUserProfileRepository(ctrl)
	resolver := NewAuthorizationResolver(AuthorizationResolverOptions{
		Profiles: profiles,
		Policy:   domainauth.AdminPolicy{SentinelRole: "Secretário Geral"},
	})

	profiles.EXPECT().
		GetWithRoles(gomock.Any(), testIdentityID).
		Return(profileWithRoles("Administrador do Sistema"), nil)

	user, err := resolver.Resolve(context.Background(), testIdentityID)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

func TestAuthorizationResolver_Resolve_Failures(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("connection refused")
	tests := []struct {
		name    string
		profile *model.UserProfile
		err     error
	}{
		{name: "storage failure", err: storageErr},
		{name: "missing row", err: apperrors.NotFound("user not found")},
		{name: "nil profile", profile: nil, err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			profiles, resolver := newResolver(t)
			profiles.EXPECT().
				GetWithRoles(gomock.Any(), testIdentityID).
				Return(tt.profile, tt.err)

			user, err := resolver.Resolve(context.Background(), testIdentityID)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, apperrors.IsUserNotFound(err))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestAuthorizationResolver_Resolve_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "storage failure", err: errors.New("connection refused"), wantLevel: "level=WARN"},
		{name: "missing row", err: apperrors.NotFound("user not found"), wantLevel: "level=DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			profiles := mocks.NewMockUserProfileRepository(ctrl)
			profiles.EXPECT().GetWithRoles(gomock.Any(), testIdentityID).Return(nil, tt.err)

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			resolver := NewAuthorizationResolver(AuthorizationResolverOptions{Profiles: profiles, Logger: logger})

			_, err := resolver.Resolve(context.Background(), testIdentityID)
			require.Error(t, err)
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), "profile lookup failed")
			assert.Contains(t, buf.String(), "component=authorization_resolver")
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	require.NoError(t, RequireAdmin(&model.User{IsAdmin: true}, "x"))

	err := RequireAdmin(&model.User{IsAdmin: false, Roles: []string{"Diácono"}}, "Only administrators can list roles.")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotAuthorized(err))
	assert.Equal(t, "Only administrators can list roles.", err.Error())

	err = RequireAdmin(nil, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotAuthorized(err))
}
