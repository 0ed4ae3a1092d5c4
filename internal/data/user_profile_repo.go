package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/data/pgxutil"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
)

// profileWithRolesQuery joins a user with its primary location and assigned role names.
const profileWithRolesQuery = `
	SELECT
		u.id::text AS id,
		u.email,
		u.nome,
		u.localizacao_id::text AS localizacao_id,
		COALESCE(l.nome, '') AS nome_localizacao,
		COALESCE(
			array_agg(c.nome ORDER BY c.nome) FILTER (WHERE c.nome IS NOT NULL),
			'{}'::text[]
		) AS cargos
	FROM usuario u
	LEFT JOIN localizacao l ON l.id = u.localizacao_id
	LEFT JOIN usuario_cargo uc ON uc.usuario_id = u.id
	LEFT JOIN cargo c ON c.id = uc.cargo_id
	WHERE u.id = $1
	GROUP BY u.id, l.nome`

const insertProfileQuery = `
	WITH ins AS (
		INSERT INTO usuario (id, email, nome, localizacao_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, nome, localizacao_id
	)
	SELECT
		ins.id::text AS id,
		ins.email,
		ins.nome,
		ins.localizacao_id::text AS localizacao_id,
		COALESCE(l.nome, '') AS nome_localizacao,
		'{}'::text[] AS cargos
	FROM ins
	LEFT JOIN localizacao l ON l.id = ins.localizacao_id`

// profileRow is the storage shape returned by the profile queries.
type profileRow struct {
	ID              string   `db:"id"`
	Email           string   `db:"email"`
	Nome            string   `db:"nome"`
	LocalizacaoID   string   `db:"localizacao_id"`
	NomeLocalizacao string   `db:"nome_localizacao"`
	Cargos          []string `db:"cargos"`
}

func (r profileRow) toProfile() (*model.UserProfile, error) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, errors.New("user row has empty id")
	}
	if strings.TrimSpace(r.Email) == "" {
		return nil, fmt.Errorf("user row %s has empty email", r.ID)
	}
	roles := r.Cargos
	if roles == nil {
		roles = []string{}
	}
	return &model.UserProfile{
		ID:                r.ID,
		Email:             r.Email,
		Name:              r.Nome,
		PrimaryLocationID: r.LocalizacaoID,
		LocationName:      r.NomeLocalizacao,
		RoleNames:         roles,
	}, nil
}

// UserProfileRepo provides database operations for user profiles (table usuario).
type UserProfileRepo struct {
	DB *sql.DB
}

// NewUserProfileRepo creates a new UserProfileRepo.
func NewUserProfileRepo(db *sql.DB) *UserProfileRepo {
	return &UserProfileRepo{DB: db}
}

// GetWithRoles loads the profile with its location name and role names.
func (r *UserProfileRepo) GetWithRoles(ctx context.Context, id string) (*model.UserProfile, error) {
	id = strings.TrimSpace(id)
	if !isUUID(id) {
		return nil, apperrors.NotFound("user not found")
	}
	p, err := r.queryProfile(ctx, profileWithRolesQuery, id)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "user not found")
	}
	return p, err
}

// Create inserts a profile keyed by the gateway identity id.
func (r *UserProfileRepo) Create(ctx context.Context, req *model.CreateUserProfileRequest) (*model.UserProfile, error) {
	if req == nil {
		return nil, apperrors.Validation("create profile request is required")
	}
	in := *req
	in.Normalize()
	switch {
	case !isUUID(in.ID):
		return nil, apperrors.ValidationField("id", "identity id must be a UUID")
	case in.Email == "":
		return nil, apperrors.ValidationField("email", "email is required")
	case in.Name == "":
		return nil, apperrors.ValidationField("nome", "name is required")
	case !isUUID(in.PrimaryLocationID):
		return nil, apperrors.ValidationField("localizacao_id", "primary location id must be a UUID")
	}

	return r.queryProfile(ctx, insertProfileQuery, in.ID, in.Email, in.Name, in.PrimaryLocationID)
}

// AssignRole links a user to a role. Assigning an existing link is a no-op.
func (r *UserProfileRepo) AssignRole(ctx context.Context, userID, cargoID string) error {
	if !isUUID(userID) || !isUUID(cargoID) {
		return apperrors.Validation("user id and role id must be UUIDs")
	}
	_, err := pgxutil.Exec(ctx, r.DB, `
		INSERT INTO usuario_cargo (usuario_id, cargo_id) VALUES ($1, $2)
		ON CONFLICT (usuario_id, cargo_id) DO NOTHING`, userID, cargoID)
	return apperrors.MapDBError(err)
}

func (r *UserProfileRepo) queryProfile(ctx context.Context, query string, args ...any) (*model.UserProfile, error) {
	row, err := pgxutil.QueryOne[profileRow](ctx, r.DB, query, args...)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	p, err := row.toProfile()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Unexpected user row shape")
	}
	return p, nil
}
