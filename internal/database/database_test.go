package database

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readshelf/readshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	dbPath := "./test_database_" + t.Name() + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestNewDatabase_MigratesSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"users", "collections", "books", "audit_events"} {
		assert.True(t, db.DB.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.DB.Create(&entities.Collection{Owner: "alice", Name: "fiction"}).Error
	require.NoError(t, err)

	dup := db.DB.Create(&entities.Collection{Owner: "alice", Name: "fiction"}).Error
	require.Error(t, dup)
	assert.True(t, IsUniqueViolation(dup))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}
