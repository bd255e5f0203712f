package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uint
	Name string
}

func TestOpen_MemoryMigrates(t *testing.T) {
	db, err := Open(":memory:", false, &widget{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Create(&widget{Name: "a"}).Error)

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path, false, &widget{})
	require.NoError(t, err)
	require.NoError(t, db.Create(&widget{Name: "a"}).Error)
	require.NoError(t, Close(db))

	reopened, err := Open(path, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(reopened) })

	var w widget
	require.NoError(t, reopened.First(&w).Error)
	assert.Equal(t, "a", w.Name)
}

func TestOpen_ForeignKeysOn(t *testing.T) {
	db, err := Open(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "SMITH", want: "%smith%"},
		{in: "100%", want: `%100\%%`},
		{in: "snake_case", want: `%snake\_case%`},
		{in: `C:\tmp`, want: `%c:\\tmp%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.in))
		})
	}
}
