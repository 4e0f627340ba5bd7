package repositories

import (
	"context"

	"github.com/clinicbook/admin-console/internal/domain/entities"
)

// AuditRepository persists the admin action audit trail.
type AuditRepository interface {
	// Record appends one audit event.
	Record(ctx context.Context, event *entities.AuditEvent) error

	// ListRecent retrieves the most recent events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entities.AuditEvent, error)
}
