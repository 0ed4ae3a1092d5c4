package service

import (
	"context"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/core"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
)

// Each role use case checks the caller's admin flag before any I/O, validates its
// payload, then makes a single repository call whose result and error are returned
// unchanged.

const (
	msgListCargos  = "Only administrators can list roles."
	msgCreateCargo = "Only administrators can create roles."
	msgUpdateCargo = "Only administrators can update roles."
	msgDeleteCargo = "Only administrators can delete roles."
)

// ListCargos lists every role for an administrator.
type ListCargos struct {
	repo core.CargoRepository
}

// NewListCargos constructs a ListCargos use case.
func NewListCargos(repo core.CargoRepository) *ListCargos {
	if repo == nil {
		panic("CargoRepository is required")
	}
	return &ListCargos{repo: repo}
}

// Execute returns all roles ordered by name.
func (uc *ListCargos) Execute(ctx context.Context, caller *model.User) ([]*model.Cargo, error) {
	if err := RequireAdmin(caller, msgListCargos); err != nil {
		return nil, err
	}
	return uc.repo.ListAll(ctx)
}

// CreateCargo creates a role for an administrator.
type CreateCargo struct {
	repo core.CargoRepository
}

// NewCreateCargo constructs a CreateCargo use case.
func NewCreateCargo(repo core.CargoRepository) *CreateCargo {
	if repo == nil {
		panic("CargoRepository is required")
	}
	return &CreateCargo{repo: repo}
}

// Execute validates the request and stores the new role. A duplicate name surfaces
// as the repository's Conflict error.
func (uc *CreateCargo) Execute(
	ctx context.Context,
	caller *model.User,
	req *model.CreateCargoRequest,
) (*model.Cargo, error) {
	if err := RequireAdmin(caller, msgCreateCargo); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.Validation("role payload is required")
	}

	in := *req
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, apperrors.ValidationField("nome", err.Error())
	}
	return uc.repo.Create(ctx, &in)
}

// UpdateCargo updates a role for an administrator.
type UpdateCargo struct {
	repo core.CargoRepository
}

// NewUpdateCargo constructs an UpdateCargo use case.
func NewUpdateCargo(repo core.CargoRepository) *UpdateCargo {
	if repo == nil {
		panic("CargoRepository is required")
	}
	return &UpdateCargo{repo: repo}
}

// Execute validates the id and name and applies the update.
func (uc *UpdateCargo) Execute(ctx context.Context, caller *model.User, cargo *model.Cargo) (*model.Cargo, error) {
	if err := RequireAdmin(caller, msgUpdateCargo); err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, apperrors.Validation("role payload is required")
	}

	in := *cargo
	in.Normalize()
	if err := validateCargoID(in.ID, "Role id is required for update."); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, apperrors.ValidationField("nome", err.Error())
	}
	return uc.repo.Update(ctx, &in)
}

// DeleteCargo deletes a role for an administrator.
type DeleteCargo struct {
	repo core.CargoRepository
}

// NewDeleteCargo constructs a DeleteCargo use case.
func NewDeleteCargo(repo core.CargoRepository) *DeleteCargo {
	if repo == nil {
		panic("CargoRepository is required")
	}
	return &DeleteCargo{repo: repo}
}

// Execute deletes the role. A role still assigned to users surfaces as the
// repository's ForeignKey error.
func (uc *DeleteCargo) Execute(ctx context.Context, caller *model.User, id string) error {
	if err := RequireAdmin(caller, msgDeleteCargo); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := validateCargoID(id, "Role id is required for deletion."); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func validateCargoID(id, missingMsg string) error {
	if id == "" {
		return apperrors.ValidationField("id", missingMsg)
	}
	return nil
}
