package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/bm254now/team-coconut/internal/game"
)

func TestSaveResultWithoutConnection(t *testing.T) {
	store := NewResultStore(nil)
	err := store.SaveResult("r1", []game.Player{{ID: "p1", Name: "Ada", Score: 300}})
	assert.NoError(t, err)
}

func TestMigrateRequiresConnection(t *testing.T) {
	assert.Error(t, Migrate(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
}
