package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/mocks"
	mockauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/mocks/auth"
)

const testDefaultLocationID = "loc-default"

func newAuthService(t *testing.T) (*mockauth.FakeIdentityGateway, *mocks.MockUserProfileRepository, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	gateway := mockauth.NewFakeIdentityGateway(testIdentityID)
	profiles := mocks.NewMockUserProfileRepository(ctrl)
	resolver := NewAuthorizationResolver(AuthorizationResolverOptions{Profiles: profiles})
	svc := NewAuthService(AuthServiceOptions{
		Gateway:  gateway,
		Resolver: resolver,
		Registration: RegistrationConfig{
			Profiles:          profiles,
			DefaultLocationID: testDefaultLocationID,
		},
	})
	return gateway, profiles, svc
}

func TestAuthService_Login_AdminScenario(t *testing.T) {
	t.Parallel()
	gateway, profiles, svc := newAuthService(t)
	ctx := context.Background()

	profiles.EXPECT().
		GetWithRoles(ctx, testIdentityID).
		Return(profileWithRoles("administrador DO sistema "), nil).
		Times(1)

	res, err := svc.Login(ctx, "admin@x.org", "secret")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.User.IsAdmin)
	assert.Equal(t, testIdentityID, res.User.ID)
	assert.Equal(t, testIdentityID, res.Session.IdentityID)
	assert.NotEmpty(t, res.Session.ID)
	assert.Equal(t, 1, gateway.VerifyCalls)
	assert.Equal(t, 1, gateway.Sessions.Len())
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "unauthorized status", err: &domainauth.GatewayError{Status: http.StatusUnauthorized, Message: "nope"}},
		{name: "bad request status", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Message: "bad password"}},
		{name: "invalid_grant code", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Code: "invalid_grant"}},
		{name: "invalid_credentials code", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Code: "invalid_credentials"}},
		{name: "message pattern", err: errors.New("Invalid login credentials")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gateway, _, svc := newAuthService(t)
			gateway.VerifyFunc = func(context.Context, string, string) (domainauth.Session, error) {
				return domainauth.Session{}, tt.err
			}

			// No GetWithRoles expectation: a profile lookup would fail the test.
			res, err := svc.Login(context.Background(), "x@x.org", "wrong")
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperrors.IsInvalidCredentials(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAuthService_Login_ClientErrorsAreNotCredentialFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "invalid_client", err: &domainauth.GatewayError{Status: http.StatusUnauthorized, Code: "invalid_client", Message: "client authentication failed"}},
		{name: "unsupported_grant_type", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Code: "unsupported_grant_type"}},
		{name: "invalid_scope", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Code: "invalid_scope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gateway, _, svc := newAuthService(t)
			gateway.VerifyFunc = func(context.Context, string, string) (domainauth.Session, error) {
				return domainauth.Session{}, tt.err
			}

			_, err := svc.Login(context.Background(), "x@x.org", "secret")
			require.Error(t, err)
			assert.True(t, apperrors.IsInternal(err))
			assert.False(t, apperrors.IsInvalidCredentials(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAuthService_Login_GatewayFailure(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)
	gwErr := &domainauth.GatewayError{Status: http.StatusServiceUnavailable, Message: "upstream down"}
	gateway.VerifyFunc = func(context.Context, string, string) (domainauth.Session, error) {
		return domainauth.Session{}, gwErr
	}

	_, err := svc.Login(context.Background(), "x@x.org", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	assert.False(t, apperrors.IsInvalidCredentials(err))
	assert.ErrorIs(t, err, gwErr)
}

func TestAuthService_Login_ContextErrors(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)
	gateway.VerifyFunc = func(context.Context, string, string) (domainauth.Session, error) {
		return domainauth.Session{}, context.DeadlineExceeded
	}

	_, err := svc.Login(context.Background(), "x@x.org", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestAuthService_Login_UserNotFoundEndsSession(t *testing.T) {
	t.Parallel()
	gateway, profiles, svc := newAuthService(t)

	profiles.EXPECT().
		GetWithRoles(gomock.Any(), testIdentityID).
		Return(nil, apperrors.NotFound("user not found"))

	res, err := svc.Login(context.Background(), "orphan@x.org", "secret")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, apperrors.IsUserNotFound(err))
	assert.Equal(t, 1, gateway.EndCalls)
	assert.Equal(t, 0, gateway.Sessions.Len())
}

func TestAuthService_Login_RequiresCredentials(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)

	_, err := svc.Login(context.Background(), "  ", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "email", apperrors.GetField(err))

	_, err = svc.Login(context.Background(), "x@x.org", "")
	require.Error(t, err)
	assert.Equal(t, "password", apperrors.GetField(err))

	assert.Equal(t, 0, gateway.VerifyCalls)
}

func TestAuthService_GetLoggedUser(t *testing.T) {
	t.Parallel()
	_, profiles, svc := newAuthService(t)
	ctx := context.Background()

	profiles.EXPECT().
		GetWithRoles(ctx, testIdentityID).
		Return(profileWithRoles("Diácono"), nil).
		Times(3)

	res, err := svc.Login(ctx, "user@x.org", "secret")
	require.NoError(t, err)

	first, err := svc.GetLoggedUser(ctx, res.Session.ID)
	require.NoError(t, err)
	second, err := svc.GetLoggedUser(ctx, res.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, res.User, first)
	assert.False(t, first.IsAdmin)
}

func TestAuthService_GetLoggedUser_NoSession(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)

	user, err := svc.GetLoggedUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 0, gateway.CurrentCalls)

	user, err = svc.GetLoggedUser(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthService_GetLoggedUser_ExpiredSession(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, gateway.Sessions.Save(ctx, domainauth.Session{
		ID:         "stale",
		IdentityID: testIdentityID,
		ExpiresAt:  time.Now().Add(-time.Minute),
	}))

	user, err := svc.GetLoggedUser(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 0, gateway.Sessions.Len())
}

func TestAuthService_GetLoggedUser_GatewayError(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)
	gateway.CurrentFunc = func(context.Context, string) (domainauth.Session, bool, error) {
		return domainauth.Session{}, false, errors.New("redis: connection refused")
	}

	_, err := svc.GetLoggedUser(context.Background(), "sess")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	gateway, profiles, svc := newAuthService(t)
	ctx := context.Background()

	profiles.EXPECT().GetWithRoles(ctx, testIdentityID).Return(profileWithRoles(), nil)

	res, err := svc.Login(ctx, "user@x.org", "secret")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, res.Session.ID))

	user, err := svc.GetLoggedUser(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 1, gateway.EndCalls)
}

func TestAuthService_Logout_ReportsFailure(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)
	endErr := errors.New("revocation failed")
	gateway.EndFunc = func(context.Context, string) error { return endErr }

	err := svc.Logout(context.Background(), "sess")
	require.Error(t, err)
	assert.ErrorIs(t, err, endErr)

	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Equal(t, 1, gateway.EndCalls)
}

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()
	gateway, profiles, svc := newAuthService(t)
	ctx := context.Background()

	profiles.EXPECT().
		Create(ctx, &model.CreateUserProfileRequest{
			ID:                testIdentityID,
			Email:             "new@x.org",
			Name:              "Novo Irmão",
			PrimaryLocationID: testDefaultLocationID,
		}).
		Return(&model.UserProfile{
			ID:                testIdentityID,
			Email:             "new@x.org",
			Name:              "Novo Irmão",
			PrimaryLocationID: testDefaultLocationID,
		}, nil)

	user, err := svc.Register(ctx, RegisterInput{Name: " Novo Irmão ", Email: "new@x.org ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, testIdentityID, user.ID)
	assert.False(t, user.IsAdmin)
	assert.Empty(t, user.Roles)
	assert.Equal(t, 1, gateway.CreateCalls)
}

func TestAuthService_Register_ProfileInsertFails(t *testing.T) {
	t.Parallel()
	_, profiles, svc := newAuthService(t)
	insertErr := apperrors.ForeignKey("referenced Location does not exist.")

	profiles.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, insertErr)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name: "Novo", Email: "new@x.org", Password: "secret", LocationID: "loc-2",
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, apperrors.IsRegistrationIncomplete(err))
	assert.Contains(t, err.Error(), testIdentityID)
	assert.ErrorIs(t, err, insertErr)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{name: "missing name", in: RegisterInput{Email: "a@x.org", Password: "p"}, field: "name"},
		{name: "missing email", in: RegisterInput{Name: "A", Password: "p"}, field: "email"},
		{name: "missing password", in: RegisterInput{Name: "A", Email: "a@x.org"}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gateway, _, svc := newAuthService(t)

			_, err := svc.Register(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
			assert.Equal(t, 0, gateway.CreateCalls)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	gateway, _, svc := newAuthService(t)
	gateway.CreateFunc = func(context.Context, string, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, &domainauth.GatewayError{
			Status:  http.StatusUnprocessableEntity,
			Message: "User already registered",
		}
	}

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.org", Password: "p"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAuthService_Register_GatewayRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "validation code", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Code: "validation_failed", Message: "password too short"}},
		{name: "bare bad request", err: &domainauth.GatewayError{Status: http.StatusBadRequest, Message: "bad request"}},
		{name: "unauthorized client", err: &domainauth.GatewayError{Status: http.StatusUnauthorized, Code: "invalid_client"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gateway, _, svc := newAuthService(t)
			gateway.CreateFunc = func(context.Context, string, string) (domainauth.Identity, error) {
				return domainauth.Identity{}, tt.err
			}

			// No profile Create expectation: the insert must not run.
			_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.org", Password: "p"})
			require.Error(t, err)
			assert.True(t, apperrors.IsInternal(err))
			assert.False(t, apperrors.IsInvalidCredentials(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func newAuthServiceWithLocations(t *testing.T) (*mockauth.FakeIdentityGateway, *mocks.MockUserProfileRepository, *mocks.MockLocationRepository, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	gateway := mockauth.NewFakeIdentityGateway(testIdentityID)
	profiles := mocks.NewMockUserProfileRepository(ctrl)
	locations := mocks.NewMockLocationRepository(ctrl)
	svc := NewAuthService(AuthServiceOptions{
		Gateway:  gateway,
		Resolver: NewAuthorizationResolver(AuthorizationResolverOptions{Profiles: profiles}),
		Registration: RegistrationConfig{
			Profiles:          profiles,
			Locations:         locations,
			DefaultLocationID: testDefaultLocationID,
		},
	})
	return gateway, profiles, locations, svc
}

func TestAuthService_Register_ChecksLocation(t *testing.T) {
	t.Parallel()
	gateway, profiles, locations, svc := newAuthServiceWithLocations(t)
	ctx := context.Background()

	gomock.InOrder(
		locations.EXPECT().
			GetByID(ctx, "loc-2").
			Return(&model.Location{ID: "loc-2", Name: "Vespasiano", Kind: model.LocationKindRegional}, nil),
		profiles.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&model.UserProfile{ID: testIdentityID, Email: "new@x.org", Name: "Novo", PrimaryLocationID: "loc-2"}, nil),
	)

	user, err := svc.Register(ctx, RegisterInput{Name: "Novo", Email: "new@x.org", Password: "secret", LocationID: "loc-2"})
	require.NoError(t, err)
	assert.Equal(t, testIdentityID, user.ID)
	assert.Equal(t, 1, gateway.CreateCalls)
}

func TestAuthService_Register_UnknownLocation(t *testing.T) {
	t.Parallel()
	gateway, _, locations, svc := newAuthServiceWithLocations(t)

	locations.EXPECT().
		GetByID(gomock.Any(), testDefaultLocationID).
		Return(nil, apperrors.NotFound("location not found"))

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.org", Password: "p"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "localizacao_id", apperrors.GetField(err))
	assert.Equal(t, 0, gateway.CreateCalls)
}

func TestAuthService_Register_LocationLookupFails(t *testing.T) {
	t.Parallel()
	gateway, _, locations, svc := newAuthServiceWithLocations(t)
	dbErr := apperrors.Internal("database unavailable")

	locations.EXPECT().GetByID(gomock.Any(), testDefaultLocationID).Return(nil, dbErr)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.org", Password: "p"})
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
	assert.Equal(t, 0, gateway.CreateCalls)
}
