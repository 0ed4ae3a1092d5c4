package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/profSauloRenato/agenda-setor-vespasiano/internal/errors"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/testutil"
)

func TestLocationRepo_GetByID_MalformedIDWithoutDB(t *testing.T) {
	_, err := NewLocationRepo(nil).GetByID(context.Background(), "loc-default")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLocationRepo_GetByID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewLocationRepo(db)
		loc := createTestLocation(t, db)

		got, err := repo.GetByID(ctx, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, loc, got)

		_, err = repo.GetByID(ctx, uuid.NewString())
		assert.True(t, apperrors.IsNotFound(err))
	})
}
