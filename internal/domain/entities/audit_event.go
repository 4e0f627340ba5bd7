package entities

import "time"

// AuditEvent records a single admin workflow action for the audit trail.
type AuditEvent struct {
	ID         string    `json:"id" db:"id"`
	Actor      string    `json:"actor" db:"actor"`
	Action     string    `json:"action" db:"action"`
	Collection string    `json:"collection" db:"collection"`
	EntityID   string    `json:"entityId" db:"entity_id"`
	Detail     string    `json:"detail" db:"detail"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
