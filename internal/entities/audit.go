package entities

import "time"

type AuditEventType string

const (
	AuditEventAuth       AuditEventType = "auth"
	AuditEventCollection AuditEventType = "collection"
	AuditEventBook       AuditEventType = "book"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records an authentication attempt or an entity mutation.
type AuditEvent struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Owner      string         `gorm:"index;size:100" json:"owner"`
	EventType  AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action     string         `gorm:"size:100" json:"action"` // e.g. "collection_create", "book_delete"
	EntityType string         `gorm:"size:50" json:"entity_type,omitempty"`
	EntityID   *uint          `gorm:"index" json:"entity_id,omitempty"`
	IPAddress  string         `gorm:"size:45" json:"ip_address,omitempty"`
	Status     AuditStatus    `gorm:"size:20" json:"status"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
