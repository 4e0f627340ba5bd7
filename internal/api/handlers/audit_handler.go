package handlers

import (
	"net/http"
	"strconv"

	"github.com/clinicbook/admin-console/internal/domain/repositories"
)

// AuditHandler serves the admin action audit trail.
type AuditHandler struct {
	repo repositories.AuditRepository
}

// NewAuditHandler creates a new audit handler. repo may be nil when the audit
// database is disabled.
func NewAuditHandler(repo repositories.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// ListAuditEvents handles GET /api/audit?limit=N
func (h *AuditHandler) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondWithError(w, http.StatusNotFound, "audit trail is not enabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	events, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
