package handlers

import (
	"net/http"
	"strconv"

	"github.com/clinicbook/admin-console/internal/application/projections"
)

// DashboardHandler serves the derived dashboard aggregates and the recent
// activity panels that are computed from the live projections.
type DashboardHandler struct {
	aggregator *projections.Aggregator
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(aggregator *projections.Aggregator) *DashboardHandler {
	return &DashboardHandler{aggregator: aggregator}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.aggregator.Dashboard())
}

// GetRecentActivity handles GET /api/dashboard/recent?limit=N
func (h *DashboardHandler) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments":   h.aggregator.RecentAppointments(limit),
		"pendingDoctors": h.aggregator.PendingDoctors(limit),
		"reviews":        h.aggregator.RecentReviews(limit),
	})
}
