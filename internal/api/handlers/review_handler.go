package handlers

import (
	"context"
	"net/http"

	"github.com/clinicbook/admin-console/internal/application/projections"
	"github.com/clinicbook/admin-console/internal/application/stats"
)

// ReviewModeration defines the interface for review moderation operations
type ReviewModeration interface {
	Approve(ctx context.Context, id string) error
	Disapprove(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ReviewHandler handles review moderation requests
type ReviewHandler struct {
	moderation ReviewModeration
	aggregator *projections.Aggregator
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(moderation ReviewModeration, aggregator *projections.Aggregator) *ReviewHandler {
	return &ReviewHandler{
		moderation: moderation,
		aggregator: aggregator,
	}
}

// ListReviews handles GET /api/reviews?q=...&filter=...
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filter := r.URL.Query().Get("filter")

	reviews := stats.FilterReviews(h.aggregator.Reviews(), query, filter)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ApproveReview handles POST /api/reviews/{id}/approve
func (h *ReviewHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	if err := h.moderation.Approve(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"isApproved": true})
}

// DisapproveReview handles POST /api/reviews/{id}/disapprove
func (h *ReviewHandler) DisapproveReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	if err := h.moderation.Disapprove(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"isApproved": false})
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	if err := h.moderation.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
