package audit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/readshelf/readshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_audit_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewRepository(db), cleanup
}

func TestRepository_LogAndGetEvents(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.LogEvent(&entities.AuditEvent{
		Owner:     "alice",
		EventType: entities.AuditEventCollection,
		Action:    "collection_create",
		Status:    entities.AuditStatusSuccess,
	})
	require.NoError(t, err)

	err = repo.LogEvent(&entities.AuditEvent{
		Owner:     "bob",
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusFailed,
	})
	require.NoError(t, err)

	events, total, err := repo.GetEvents("alice", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "collection_create", events[0].Action)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	old := &entities.AuditEvent{
		Owner:     "alice",
		EventType: entities.AuditEventBook,
		Action:    "book_delete",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.LogEvent(old))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		Owner:     "alice",
		EventType: entities.AuditEventBook,
		Action:    "book_create",
		Status:    entities.AuditStatusSuccess,
	}))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetEvents("alice", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
