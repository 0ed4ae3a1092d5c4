package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/data/pgxutil"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
)

const locationColumns = `id::text AS id, nome, tipo, parent_id::text AS parent_id`

type locationRow struct {
	ID       string  `db:"id"`
	Nome     string  `db:"nome"`
	Tipo     string  `db:"tipo"`
	ParentID *string `db:"parent_id"`
}

func (r locationRow) toLocation() (*model.Location, error) {
	kind, ok := model.ParseLocationKind(r.Tipo)
	if !ok {
		return nil, apperrors.Internal("unknown location kind " + r.Tipo)
	}
	return &model.Location{ID: r.ID, Name: r.Nome, Kind: kind, ParentID: r.ParentID}, nil
}

// LocationRepo provides location inserts and lookups. Seeding creates and finds nodes by
// name; registration checks the primary location by id.
type LocationRepo struct {
	DB *sql.DB
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{DB: db}
}

// Create inserts a location node.
func (r *LocationRepo) Create(ctx context.Context, loc *model.Location) (*model.Location, error) {
	if loc == nil {
		return nil, apperrors.Validation("location is required")
	}
	if err := loc.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if loc.ParentID != nil && !isUUID(*loc.ParentID) {
		return nil, apperrors.ValidationField("parent_id", "parent id must be a UUID")
	}
	return r.getOne(ctx,
		`INSERT INTO localizacao (nome, tipo, parent_id) VALUES ($1, $2, $3) RETURNING `+locationColumns,
		strings.TrimSpace(loc.Name), string(loc.Kind), loc.ParentID,
	)
}

// GetByID returns the location with this id.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	if !isUUID(id) {
		return nil, apperrors.NotFound("location not found")
	}
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM localizacao WHERE id = $1`, strings.TrimSpace(id))
}

// GetByName returns the location with exactly this name.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*model.Location, error) {
	return r.getOne(ctx, `SELECT `+locationColumns+` FROM localizacao WHERE nome = $1`, strings.TrimSpace(name))
}

func (r *LocationRepo) getOne(ctx context.Context, query string, args ...any) (*model.Location, error) {
	row, err := pgxutil.QueryOne[locationRow](ctx, r.DB, query, args...)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "location not found")
		}
		return nil, mapped
	}
	return row.toLocation()
}
