package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_contents.sql", "00002_reactions_comments.sql"}, names)

	for _, n := range names {
		b, err := fs.ReadFile(Migrations, n)
		require.NoError(t, err)
		body := string(b)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), n)
		assert.Contains(t, body, "-- +goose Down", n)
	}
}

func TestMigrations_DefineMirrorTables(t *testing.T) {
	var all strings.Builder
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	for _, n := range names {
		b, err := fs.ReadFile(Migrations, n)
		require.NoError(t, err)
		all.Write(b)
	}

	for _, table := range []string{"contents", "reactions", "comments"} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
