package handlers

import (
	"net/http"

	"github.com/clinicbook/admin-console/internal/application/projections"
)

// AdminHandler serves the read-only console operator directory.
type AdminHandler struct {
	aggregator *projections.Aggregator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(aggregator *projections.Aggregator) *AdminHandler {
	return &AdminHandler{aggregator: aggregator}
}

// ListAdmins handles GET /api/admins
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins := h.aggregator.Admins()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"admins": admins,
		"count":  len(admins),
	})
}
