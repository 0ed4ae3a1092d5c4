package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/data/pgxutil"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
)

const cargoColumns = `id::text AS id, nome, pode_enviar_push`

// cargoRow is the storage shape of a role row.
type cargoRow struct {
	ID             string `db:"id"`
	Nome           string `db:"nome"`
	PodeEnviarPush bool   `db:"pode_enviar_push"`
}

// toCargo maps a row to the domain type, rejecting rows without an id or name.
func (r cargoRow) toCargo() (*model.Cargo, error) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, errors.New("role row has empty id")
	}
	if strings.TrimSpace(r.Nome) == "" {
		return nil, fmt.Errorf("role row %s has empty nome", r.ID)
	}
	return &model.Cargo{
		ID:                        r.ID,
		Name:                      r.Nome,
		CanSendAdministrativePush: r.PodeEnviarPush,
	}, nil
}

// CargoRepo provides database operations for roles (table cargo).
type CargoRepo struct {
	DB *sql.DB
}

// NewCargoRepo creates a new CargoRepo.
func NewCargoRepo(db *sql.DB) *CargoRepo {
	return &CargoRepo{DB: db}
}

// ListAll returns every role ordered by name using the database collation.
func (r *CargoRepo) ListAll(ctx context.Context) ([]*model.Cargo, error) {
	rows, err := pgxutil.QueryAll[cargoRow](ctx, r.DB, `SELECT `+cargoColumns+` FROM cargo ORDER BY nome ASC`)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list roles: %w", err))
	}
	return toCargos(rows)
}

// GetByName returns the role with exactly this name.
func (r *CargoRepo) GetByName(ctx context.Context, name string) (*model.Cargo, error) {
	return r.getOne(ctx, `SELECT `+cargoColumns+` FROM cargo WHERE nome = $1`, strings.TrimSpace(name))
}

// Create inserts a role. A duplicate name is reported as Conflict on field "nome".
func (r *CargoRepo) Create(ctx context.Context, req *model.CreateCargoRequest) (*model.Cargo, error) {
	if req == nil {
		return nil, apperrors.Validation("create role request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.ValidationField("nome", err.Error())
	}

	out, err := r.getOne(ctx,
		`INSERT INTO cargo (nome, pode_enviar_push) VALUES ($1, $2) RETURNING `+cargoColumns,
		strings.TrimSpace(req.Name), req.CanSendAdministrativePush,
	)
	if err != nil {
		return nil, mapCargoWriteErr(err, req.Name)
	}
	return out, nil
}

// Update replaces name and push permission for cargo.ID. When no row matches, it fails
// with NotFound instead of returning the input.
func (r *CargoRepo) Update(ctx context.Context, cargo *model.Cargo) (*model.Cargo, error) {
	if cargo == nil {
		return nil, apperrors.Validation("role is required")
	}
	if err := cargo.Validate(); err != nil {
		return nil, apperrors.ValidationField("nome", err.Error())
	}
	if !isUUID(cargo.ID) {
		return nil, errCargoNotUpdated()
	}

	out, err := r.getOne(ctx,
		`UPDATE cargo SET nome = $2, pode_enviar_push = $3 WHERE id = $1 RETURNING `+cargoColumns,
		cargo.ID, strings.TrimSpace(cargo.Name), cargo.CanSendAdministrativePush,
	)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, errCargoNotUpdated()
		}
		return nil, mapCargoWriteErr(err, cargo.Name)
	}
	return out, nil
}

// Delete removes the role. A role still assigned to users fails with ForeignKey.
func (r *CargoRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if !isUUID(id) {
		return apperrors.NotFound("role not found")
	}

	affected, err := pgxutil.Exec(ctx, r.DB, `DELETE FROM cargo WHERE id = $1`, id)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsForeignKey(mapped) {
			return apperrors.Wrap(err, apperrors.ErrCodeForeignKey,
				"Cannot delete role because it is assigned to one or more users.")
		}
		return mapped
	}
	if affected == 0 {
		return apperrors.NotFound("role not found")
	}
	return nil
}

func (r *CargoRepo) getOne(ctx context.Context, query string, args ...any) (*model.Cargo, error) {
	row, err := pgxutil.QueryOne[cargoRow](ctx, r.DB, query, args...)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	out, err := row.toCargo()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unexpected role row shape")
	}
	return out, nil
}

func toCargos(rows []cargoRow) ([]*model.Cargo, error) {
	out := make([]*model.Cargo, 0, len(rows))
	for _, row := range rows {
		c, err := row.toCargo()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unexpected role row shape")
		}
		out = append(out, c)
	}
	return out, nil
}

// mapCargoWriteErr gives duplicate names a role-specific message; other errors pass through.
func mapCargoWriteErr(err error, name string) error {
	if !apperrors.IsConflict(err) {
		return err
	}
	var cause error = err
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Cause != nil {
		cause = appErr.Cause
	}
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeConflict,
		Message: fmt.Sprintf("A role named %q already exists.", strings.TrimSpace(name)),
		Field:   "nome",
		Cause:   cause,
	}
}

func errCargoNotUpdated() error {
	return apperrors.NotFound("role not found or no changes applied")
}

func isUUID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}
