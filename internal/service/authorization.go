package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/core"
	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
)

// AuthorizationResolverOptions groups dependencies for AuthorizationResolver.
type AuthorizationResolverOptions struct {
	Profiles core.UserProfileRepository // Required
	Policy   domainauth.AdminPolicy     // Zero value uses the default sentinel role
	Logger   *slog.Logger               // Optional
}

// AuthorizationResolver turns a gateway identity id into an application User
// with its role names and computed administrator flag.
//
// Resolving never rejects a regular user; use RequireAdmin at call sites that
// need administrator privileges.
type AuthorizationResolver struct {
	profiles core.UserProfileRepository
	policy   domainauth.AdminPolicy
	logger   *slog.Logger
}

// NewAuthorizationResolver constructs a new AuthorizationResolver.
func NewAuthorizationResolver(opts AuthorizationResolverOptions) *AuthorizationResolver {
	if opts.Profiles == nil {
		panic("UserProfileRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizationResolver{
		profiles: opts.Profiles,
		policy:   opts.Policy,
		logger:   logger.With("component", "authorization_resolver"),
	}
}

// Resolve loads the profile for identityID and derives the user's authorization state.
// An empty identityID yields (nil, nil). Any load failure, including a missing profile,
// is reported as UserNotFound with the original failure as its cause.
func (r *AuthorizationResolver) Resolve(ctx context.Context, identityID string) (*model.User, error) {
	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return nil, nil
	}

	profile, err := r.profiles.GetWithRoles(ctx, identityID)
	if err != nil {
		level := slog.LevelWarn
		if apperrors.IsNotFound(err) {
			level = slog.LevelDebug
		}
		r.logger.Log(ctx, level, "profile lookup failed", "identity_id", identityID, "error", err)
		return nil, apperrors.UserNotFound(err)
	}
	if profile == nil {
		return nil, apperrors.UserNotFound(nil)
	}

	return r.userFromProfile(profile), nil
}

// userFromProfile maps a stored profile to a User. IsAdmin is a pure function of the role names.
func (r *AuthorizationResolver) userFromProfile(p *model.UserProfile) *model.User {
	return &model.User{
		ID:                p.ID,
		Email:             p.Email,
		Name:              p.Name,
		PrimaryLocationID: p.PrimaryLocationID,
		LocationName:      p.LocationName,
		IsAdmin:           r.policy.IsAdmin(p.RoleNames),
		Roles:             model.DisplayRoleNames(p.RoleNames),
	}
}

// RequireAdmin fails with NotAuthorized unless user is an administrator.
// A nil user is treated as unauthenticated and rejected the same way.
func RequireAdmin(user *model.User, message string) error {
	if user == nil || !user.IsAdmin {
		return apperrors.NotAuthorized(message)
	}
	return nil
}
