package http

import (
	"github.com/readshelf/readshelf/internal/entities"
)

// AuditLogger records entity mutations. Implemented by the audit repository;
// nil disables audit logging.
type AuditLogger interface {
	LogEvent(event *entities.AuditEvent) error
}
