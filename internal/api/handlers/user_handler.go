package handlers

import (
	"net/http"

	"github.com/clinicbook/admin-console/internal/application/projections"
	"github.com/clinicbook/admin-console/internal/application/stats"
)

// UserHandler serves the read-only patient directory.
type UserHandler struct {
	aggregator *projections.Aggregator
}

// NewUserHandler creates a new user handler
func NewUserHandler(aggregator *projections.Aggregator) *UserHandler {
	return &UserHandler{aggregator: aggregator}
}

// ListUsers handles GET /api/users?q=...
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users := stats.FilterUsers(h.aggregator.Users(), query)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}
