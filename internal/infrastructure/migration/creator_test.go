package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Invoices Table")
	require.NoError(t, err)

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, mf.UpPath, "_add_invoices_table.up.sql")
	assert.Contains(t, mf.DownPath, "_add_invoices_table.down.sql")
	assert.Len(t, mf.Version, 14)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory", func(t *testing.T) {
		migrations, err := ListMigrations(dir + "/nope")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists up migrations only", func(t *testing.T) {
		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Contains(t, migrations[0], "_first")
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"add users", "add_users"},
		{"Add-Users  Table", "add_users_table"},
		{"trailing ", "trailing"},
		{"weird!@#chars", "weirdchars"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}
