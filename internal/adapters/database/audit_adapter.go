package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/repositories"
	"github.com/clinicbook/admin-console/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// AuditAdapter persists the admin action audit trail in Postgres.
type AuditAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.AuditRepository = (*AuditAdapter)(nil)

// NewAuditAdapter creates a new audit adapter.
func NewAuditAdapter(client *postgres.Client) *AuditAdapter {
	return &AuditAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB().DB),
	}
}

// EnsureSchema creates the audit table if it does not exist yet.
func (a *AuditAdapter) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS audit_events (
			id         UUID PRIMARY KEY,
			actor      TEXT,
			action     TEXT NOT NULL,
			collection TEXT NOT NULL,
			entity_id  TEXT NOT NULL,
			detail     TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_audit_events_created_at ON audit_events (created_at DESC);`

	if _, err := a.client.DB().ExecContext(ctx, ddl); err != nil {
		return apperrors.NewStoreError("failed to ensure audit schema", err)
	}
	return nil
}

// Record appends one audit event.
func (a *AuditAdapter) Record(ctx context.Context, event *entities.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"id":         event.ID,
		"actor":      sql.NullString{String: event.Actor, Valid: event.Actor != ""},
		"action":     event.Action,
		"collection": event.Collection,
		"entity_id":  event.EntityID,
		"detail":     sql.NullString{String: event.Detail, Valid: event.Detail != ""},
		"created_at": event.CreatedAt,
	}

	query, args, err := a.db.Insert("audit_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build audit insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStoreError("failed to record audit event", err)
	}
	return nil
}

// ListRecent retrieves the most recent events, newest first.
func (a *AuditAdapter) ListRecent(ctx context.Context, limit int) ([]*entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := a.db.From("audit_events").
		Select("id", "actor", "action", "collection", "entity_id", "detail", "created_at").
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build audit list query", err)
	}

	rows, err := a.client.DB().QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list audit events", err)
	}
	defer rows.Close()

	var events []*entities.AuditEvent
	for rows.Next() {
		var (
			e      entities.AuditEvent
			actor  sql.NullString
			detail sql.NullString
		)
		if err := rows.Scan(&e.ID, &actor, &e.Action, &e.Collection, &e.EntityID, &detail, &e.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("failed to scan audit event", err)
		}
		e.Actor = actor.String
		e.Detail = detail.String
		events = append(events, &e)
	}
	return events, rows.Err()
}
