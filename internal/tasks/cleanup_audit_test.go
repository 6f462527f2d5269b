package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	cutoff  time.Time
	deleted int64
}

func (f *fakeCleaner) DeleteOldEvents(olderThan time.Time) (int64, error) {
	f.cutoff = olderThan
	return f.deleted, nil
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 7}
	processor := CleanupAuditEventsProcessor(cleaner)

	err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 10})
	require.NoError(t, err)

	// Cutoff should sit roughly 10 days in the past
	expected := time.Now().Add(-10 * 24 * time.Hour)
	assert.WithinDuration(t, expected, cleaner.cutoff, time.Minute)
}

func TestCleanupAuditEventsProcessor_DefaultsRetention(t *testing.T) {
	cleaner := &fakeCleaner{}
	processor := CleanupAuditEventsProcessor(cleaner)

	err := processor(context.Background(), CleanupAuditEventsTask{})
	require.NoError(t, err)

	expected := time.Now().Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, cleaner.cutoff, time.Minute)
}

func TestCleanupAuditEventsProcessor_NilCleaner(t *testing.T) {
	processor := CleanupAuditEventsProcessor(nil)
	err := processor(context.Background(), CleanupAuditEventsTask{})
	assert.Error(t, err)
}
