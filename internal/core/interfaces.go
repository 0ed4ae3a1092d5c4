package core

import (
	"context"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CargoRepository defines storage operations for roles.
//
// Implementations translate storage failures at the boundary: a duplicate name is a
// Conflict, deleting a referenced role is a ForeignKey error, an update that matches
// no row is NotFound and everything else is Internal.
type CargoRepository interface {
	// ListAll returns every role ordered by name ascending (storage collation).
	ListAll(ctx context.Context) ([]*model.Cargo, error)
	Create(ctx context.Context, req *model.CreateCargoRequest) (*model.Cargo, error)
	Update(ctx context.Context, cargo *model.Cargo) (*model.Cargo, error)
	Delete(ctx context.Context, id string) error
}

// UserProfileRepository defines storage operations for application user profiles.
type UserProfileRepository interface {
	// GetWithRoles loads the profile joined with its assigned role names.
	// A missing profile is reported as a NotFound AppError.
	GetWithRoles(ctx context.Context, id string) (*model.UserProfile, error)
	Create(ctx context.Context, req *model.CreateUserProfileRequest) (*model.UserProfile, error)
}

// LocationRepository defines the location lookups used outside seeding.
type LocationRepository interface {
	// GetByID returns the location with this id. A missing or malformed id is
	// reported as a NotFound AppError.
	GetByID(ctx context.Context, id string) (*model.Location, error)
}
