package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/repositories"
)

// recordAudit appends an audit event best-effort: a nil repository disables
// auditing, and a write failure never fails the admin action it describes.
func recordAudit(ctx context.Context, audit repositories.AuditRepository, action, collection, entityID, detail string) {
	if audit == nil {
		return
	}
	event := &entities.AuditEvent{
		Actor:      ActorFromContext(ctx),
		Action:     action,
		Collection: collection,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := audit.Record(ctx, event); err != nil {
		log.Warn().Err(err).Str("action", action).Str("entity_id", entityID).Msg("failed to record audit event")
	}
}

type actorContextKey struct{}

// WithActor tags a context with the acting admin's identity for audit
// attribution.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the acting admin's identity, or "" when untagged.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorContextKey{}).(string); ok {
		return actor
	}
	return ""
}
