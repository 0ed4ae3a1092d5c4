package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// constraintInfo describes a named constraint of the schema in caller-facing terms.
type constraintInfo struct {
	field   string
	message string
}

// knownConstraints covers the constraints PostgreSQL generates for the schema in
// internal/migrate. Unknown constraints fall back to the generic messages below.
var knownConstraints = map[string]constraintInfo{
	"cargo_nome_key":                {"nome", "A role with this name already exists."},
	"cargo_nome_check":              {"nome", "Role name must not be blank."},
	"usuario_email_key":             {"email", "A user with this email already exists."},
	"usuario_pkey":                  {"id", "A profile for this identity already exists."},
	"usuario_nome_check":            {"nome", "User name must not be blank."},
	"usuario_localizacao_id_fkey":   {"localizacao_id", "The selected location does not exist or is still in use by users."},
	"usuario_cargo_cargo_id_fkey":   {"cargo_id", "The role does not exist or is still assigned to users."},
	"usuario_cargo_usuario_id_fkey": {"usuario_id", "The user does not exist."},
	"localizacao_nome_key":          {"nome", "A location with this name already exists."},
	"localizacao_tipo_check":        {"tipo", "Location kind must be Regional, Setor or Congregacao."},
	"localizacao_root_is_regional":  {"parent_id", "Only Regional locations may be hierarchy roots."},
	"localizacao_not_own_parent":    {"parent_id", "A location cannot be its own parent."},
	"localizacao_parent_id_fkey":    {"parent_id", "The parent location does not exist or still has children."},
}

// reKeyField extracts the column from a detail like "Key (nome)=(x) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

var tableNames = map[string]string{
	"cargo":         "roles",
	"usuario":       "users",
	"usuario_cargo": "role assignments",
	"localizacao":   "locations",
}

// MapDBError maps storage errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict
//   - foreign key violations → ForeignKey
//   - check / NOT NULL violations → Validation
//   - context deadline / cancellation → Timeout / Canceled
//   - anything else → Internal
//
// Errors that already carry an AppError are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}
	return Wrap(err, ErrCodeInternal, "Storage operation failed")
}

func mapPgError(pgErr *pgconn.PgError) error {
	var code ErrorCode
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		code = ErrCodeConflict
	case pgerrcode.ForeignKeyViolation:
		code = ErrCodeForeignKey
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
		code = ErrCodeValidation
	default:
		return Wrap(pgErr, ErrCodeInternal, "A database error occurred. Please try again.")
	}

	out := &AppError{Code: code, Cause: pgErr}
	if info, ok := knownConstraints[pgErr.ConstraintName]; ok {
		out.Field, out.Message = info.field, info.message
		return out
	}

	out.Field = violatedField(pgErr)
	out.Message = genericMessage(pgErr, code)
	return out
}

// violatedField prefers the column reported by the server, then the Key (...) detail.
func violatedField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 && !strings.Contains(m[1], ",") {
		return m[1]
	}
	return ""
}

func genericMessage(pgErr *pgconn.PgError, code ErrorCode) string {
	switch code {
	case ErrCodeConflict:
		return "This value already exists. Please choose a different one."
	case ErrCodeForeignKey:
		if name, ok := tableNames[strings.ToLower(pgErr.TableName)]; ok {
			return "Cannot complete operation because the item is referenced by " + name + "."
		}
		return "Cannot complete operation because this item is in use."
	default:
		if pgErr.ColumnName != "" {
			return "This field has an invalid value."
		}
		return "Invalid data. Please check your input."
	}
}
