// Package scheduler enqueues recurring maintenance work on a cron schedule.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/readshelf/readshelf/internal/config"
	"github.com/readshelf/readshelf/internal/tasks"
)

// AuditCleanupScheduler periodically enqueues the audit retention cleanup task.
type AuditCleanupScheduler struct {
	taskClient *tasks.Client
	config     config.Audit

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(taskClient *tasks.Client, cfg config.Audit) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		taskClient: taskClient,
		config:     cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule. Safe to call once; subsequent calls are no-ops.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.CleanupSchedule, s.enqueueCleanup)
	if err != nil {
		return fmt.Errorf("invalid audit cleanup schedule %q: %w", s.config.CleanupSchedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit cleanup scheduled: %s (retention %d days)", s.config.CleanupSchedule, s.config.RetentionDays)
	return nil
}

// Stop halts the schedule. Already-enqueued tasks still run to completion.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Remove(s.entryID)
	s.cron.Stop()
	s.isRunning = false
}

func (s *AuditCleanupScheduler) enqueueCleanup() {
	_, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.config.RetentionDays,
	}).Save()
	if err != nil {
		log.Printf("Failed to enqueue audit cleanup task: %v", err)
	}
}
