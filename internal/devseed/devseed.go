package devseed

// Package devseed creates the minimum data needed to log in and manage roles locally:
// a root location, the administrator role and an administrator profile per dev account.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
)

// DefaultRegionalName names the root location created for development.
const DefaultRegionalName = "Regional Desenvolvimento"

// LocationStore is the subset of the location repository used for seeding.
type LocationStore interface {
	GetByName(ctx context.Context, name string) (*model.Location, error)
	Create(ctx context.Context, loc *model.Location) (*model.Location, error)
}

// CargoStore is the subset of the role repository used for seeding.
type CargoStore interface {
	GetByName(ctx context.Context, name string) (*model.Cargo, error)
	Create(ctx context.Context, req *model.CreateCargoRequest) (*model.Cargo, error)
}

// ProfileStore is the subset of the profile repository used for seeding.
type ProfileStore interface {
	GetWithRoles(ctx context.Context, id string) (*model.UserProfile, error)
	Create(ctx context.Context, req *model.CreateUserProfileRequest) (*model.UserProfile, error)
	AssignRole(ctx context.Context, userID, cargoID string) error
}

// Stores bundles the repositories needed for development seeding.
type Stores struct {
	Locations LocationStore
	Cargos    CargoStore
	Profiles  ProfileStore
}

// Admin is a dev identity that receives a profile holding the administrator role.
type Admin struct {
	ID    string
	Email string
	Name  string
}

// Plan describes what to seed.
type Plan struct {
	RegionalName  string
	AdminRoleName string
	Admins        []Admin
}

// Run executes the development seeding workflow. Existing rows are reused, so
// running it repeatedly is safe.
func Run(ctx context.Context, stores Stores, plan Plan, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if plan.RegionalName == "" {
		plan.RegionalName = DefaultRegionalName
	}

	loc, err := ensureRegional(ctx, stores.Locations, plan.RegionalName, logger)
	if err != nil {
		return err
	}
	role, err := ensureCargo(ctx, stores.Cargos, plan.AdminRoleName, logger)
	if err != nil {
		return err
	}

	failures := 0
	for _, a := range plan.Admins {
		if err := ensureAdmin(ctx, stores.Profiles, a, loc.ID, role.ID, logger); err != nil {
			logger.ErrorContext(ctx, "failed to seed admin profile", "email", a.Email, "error", err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func ensureRegional(ctx context.Context, store LocationStore, name string, logger *slog.Logger) (*model.Location, error) {
	loc, err := store.GetByName(ctx, name)
	if err == nil {
		logger.InfoContext(ctx, "location already exists", "name", name)
		return loc, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up location %q: %w", name, err)
	}
	loc, err = store.Create(ctx, &model.Location{Name: name, Kind: model.LocationKindRegional})
	if err != nil {
		return nil, fmt.Errorf("create location %q: %w", name, err)
	}
	logger.InfoContext(ctx, "created location", "name", name, "id", loc.ID)
	return loc, nil
}

func ensureCargo(ctx context.Context, store CargoStore, name string, logger *slog.Logger) (*model.Cargo, error) {
	c, err := store.GetByName(ctx, name)
	if err == nil {
		logger.InfoContext(ctx, "role already exists", "name", name)
		return c, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up role %q: %w", name, err)
	}
	c, err = store.Create(ctx, &model.CreateCargoRequest{Name: name, CanSendAdministrativePush: true})
	if err != nil {
		return nil, fmt.Errorf("create role %q: %w", name, err)
	}
	logger.InfoContext(ctx, "created role", "name", name, "id", c.ID)
	return c, nil
}

func ensureAdmin(ctx context.Context, store ProfileStore, a Admin, locationID, cargoID string, logger *slog.Logger) error {
	_, err := store.GetWithRoles(ctx, a.ID)
	switch {
	case err == nil:
	case apperrors.IsNotFound(err):
		name := a.Name
		if name == "" {
			name = a.Email
		}
		if _, err := store.Create(ctx, &model.CreateUserProfileRequest{
			ID:                a.ID,
			Email:             a.Email,
			Name:              name,
			PrimaryLocationID: locationID,
		}); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		logger.InfoContext(ctx, "created profile", "email", a.Email, "id", a.ID)
	default:
		return fmt.Errorf("look up profile: %w", err)
	}

	if err := store.AssignRole(ctx, a.ID, cargoID); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}
