package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/core"
	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/ports"
)

// RegistrationConfig groups the dependencies used only by Register.
type RegistrationConfig struct {
	Profiles core.UserProfileRepository
	// Locations, when set, is checked for the primary location before any identity is created.
	Locations         core.LocationRepository
	DefaultLocationID string
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Gateway      ports.IdentityGateway
	Resolver     *AuthorizationResolver
	Registration RegistrationConfig
	Logger       *slog.Logger
}

// AuthService orchestrates login, registration and session lookups against the identity
// gateway, delegating profile and role loading to the AuthorizationResolver.
type AuthService struct {
	gateway    ports.IdentityGateway
	resolver   *AuthorizationResolver
	profiles   core.UserProfileRepository
	locations  core.LocationRepository
	locationID string
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Gateway == nil {
		panic("IdentityGateway is required")
	}
	if opts.Resolver == nil {
		panic("AuthorizationResolver is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		gateway:    opts.Gateway,
		resolver:   opts.Resolver,
		profiles:   opts.Registration.Profiles,
		locations:  opts.Registration.Locations,
		locationID: strings.TrimSpace(opts.Registration.DefaultLocationID),
		logger:     logger.With("component", "auth_service"),
	}
}

// LoginResult contains the resolved user and the gateway session backing it.
type LoginResult struct {
	User    *model.User
	Session domainauth.Session
}

// RegisterInput groups parameters for Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// LocationID overrides the configured default primary location.
	LocationID string
}

// Login verifies the credentials at the gateway and resolves the application user.
// A verified identity without a profile fails with UserNotFound and its session is ended.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	sess, err := s.gateway.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, s.classifyGatewayError(ctx, "login", err)
	}

	user, err := s.resolver.Resolve(ctx, sess.IdentityID)
	if err != nil {
		s.endSessionQuietly(ctx, sess.ID)
		return nil, err
	}
	if user == nil {
		s.endSessionQuietly(ctx, sess.ID)
		return nil, apperrors.Internal("identity gateway returned a session without an identity")
	}

	return &LoginResult{User: user, Session: sess}, nil
}

// Register creates the identity at the gateway and then its application profile.
//
// The two writes are not atomic. When the profile insert fails the identity is left
// in place and RegistrationIncomplete is returned carrying the identity id.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if s.profiles == nil {
		return nil, apperrors.Internal("registration is not configured")
	}

	req := &model.CreateUserProfileRequest{
		Email:             in.Email,
		Name:              in.Name,
		PrimaryLocationID: in.LocationID,
	}
	req.Normalize()
	if req.PrimaryLocationID == "" {
		req.PrimaryLocationID = s.locationID
	}
	if err := validateRegistration(req, in.Password); err != nil {
		return nil, err
	}
	if err := s.checkLocation(ctx, req.PrimaryLocationID); err != nil {
		return nil, err
	}

	identity, err := s.gateway.CreateIdentity(ctx, req.Email, in.Password)
	if err != nil {
		return nil, s.classifyGatewayError(ctx, opRegister, err)
	}
	if strings.TrimSpace(identity.ID) == "" {
		return nil, apperrors.Internal("identity gateway returned an empty identity id")
	}
	req.ID = identity.ID

	profile, err := s.profiles.Create(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "profile insert failed after identity creation",
			"identity_id", identity.ID, "email", req.Email, "error", err)
		return nil, apperrors.RegistrationIncomplete(identity.ID, err)
	}

	return s.resolver.userFromProfile(profile), nil
}

// checkLocation rejects an unknown primary location so no orphan identity is created for it.
func (s *AuthService) checkLocation(ctx context.Context, id string) error {
	if s.locations == nil {
		return nil
	}
	if _, err := s.locations.GetByID(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.ValidationField("localizacao_id", "primary location does not exist")
		}
		return err
	}
	return nil
}

// GetLoggedUser returns the user behind sessionID, or (nil, nil) when there is no live session.
func (s *AuthService) GetLoggedUser(ctx context.Context, sessionID string) (*model.User, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, nil
	}

	sess, ok, err := s.gateway.CurrentSession(ctx, sessionID)
	if err != nil {
		return nil, s.classifyGatewayError(ctx, "current session", err)
	}
	if !ok {
		return nil, nil
	}

	return s.resolver.Resolve(ctx, sess.IdentityID)
}

// Logout ends the gateway session. An empty session id is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if err := s.gateway.EndSession(ctx, sessionID); err != nil {
		return s.classifyGatewayError(ctx, "logout", err)
	}
	return nil
}

func (s *AuthService) endSessionQuietly(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.gateway.EndSession(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "failed to end session", "session_id", sessionID, "error", err)
	}
}

const opRegister = "register"

// classifyGatewayError maps a gateway failure into the application error taxonomy.
func (s *AuthService) classifyGatewayError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, op+" timed out")
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, op+" canceled")
	case isIdentityConflict(err):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "An account with this email already exists.")
	case op != opRegister && isInvalidCredentials(err):
		return apperrors.InvalidCredentials(err)
	}

	s.logger.WarnContext(ctx, "identity gateway failure", "op", op, "error", err)
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Authentication failed")
}

var invalidCredentialPatterns = []string{
	"invalid login credentials",
	"invalid credentials",
	"invalid_grant",
	"invalid_credentials",
	"wrong password",
}

// isInvalidCredentials reports whether err is a rejected email/password pair. A gateway
// error carrying any other code (invalid_client, invalid_scope, ...) is not one, even
// when its status is 400 or 401.
func isInvalidCredentials(err error) bool {
	var gwErr *domainauth.GatewayError
	if errors.As(err, &gwErr) {
		switch gwErr.Code {
		case "invalid_grant", "invalid_credentials":
			return true
		case "":
			if gwErr.Status == http.StatusBadRequest || gwErr.Status == http.StatusUnauthorized {
				return true
			}
			return matchesAny(gwErr.Message, invalidCredentialPatterns)
		default:
			return false
		}
	}
	return matchesAny(err.Error(), invalidCredentialPatterns)
}

func isIdentityConflict(err error) bool {
	var gwErr *domainauth.GatewayError
	if !errors.As(err, &gwErr) {
		return false
	}
	if gwErr.Status == http.StatusConflict {
		return true
	}
	return matchesAny(gwErr.Message, []string{"already registered", "already exists"})
}

func matchesAny(msg string, patterns []string) bool {
	msg = strings.ToLower(msg)
	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func validateCredentials(email, password string) error {
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

func validateRegistration(req *model.CreateUserProfileRequest, password string) error {
	if req.Name == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	if err := validateCredentials(req.Email, password); err != nil {
		return err
	}
	if req.PrimaryLocationID == "" {
		return apperrors.ValidationField("localizacao_id", "primary location is required")
	}
	return nil
}
