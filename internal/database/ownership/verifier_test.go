package ownership

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readshelf/readshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Verifier, func()) {
	dbPath := "./test_ownership_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Collection{}, &entities.Book{})
	require.NoError(t, err)

	verifier := NewVerifier(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, verifier, cleanup
}

func TestVerifier_VerifyCollectionOwner(t *testing.T) {
	db, verifier, cleanup := setupTestDB(t)
	defer cleanup()

	collection := &entities.Collection{Owner: "alice", Name: "fiction"}
	require.NoError(t, db.Create(collection).Error)

	ok, err := verifier.VerifyCollectionOwner(collection.ID, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	// Foreign row and missing row are both a plain false
	ok, err = verifier.VerifyCollectionOwner(collection.ID, "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = verifier.VerifyCollectionOwner(9999, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifier_VerifyBookOwner(t *testing.T) {
	db, verifier, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Owner: "alice", Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, db.Create(book).Error)

	ok, err := verifier.VerifyBookOwner(book.ID, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifier.VerifyBookOwner(book.ID, "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = verifier.VerifyBookOwner(9999, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}
