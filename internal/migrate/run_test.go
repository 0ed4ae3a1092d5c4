package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_SortedAndEmbedded(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	assert.Equal(t, "0001_init.sql", files[0])
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1], files[i])
	}
}

func TestInitMigration_DefinesSchema(t *testing.T) {
	body, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)

	sql := string(body)
	for _, table := range []string{"localizacao", "usuario", "cargo", "usuario_cargo"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.True(t, strings.Contains(sql, "nome TEXT NOT NULL UNIQUE CHECK"), "cargo.nome must be unique")
	assert.Contains(t, sql, "cargo_id UUID NOT NULL REFERENCES cargo (id) ON DELETE RESTRICT")
}
