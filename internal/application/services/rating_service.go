package services

import (
	"context"
	"math"

	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
)

// RatingService recomputes a doctor's aggregate rating and review count from
// the reviews the caller currently holds. The input is a client-observed
// snapshot, not an authoritative server-side query, so the result is a
// best-effort convergence: an incomplete local review set can under-count.
type RatingService struct {
	store providers.DocumentStore
}

// NewRatingService creates a new rating service.
func NewRatingService(store providers.DocumentStore) *RatingService {
	return &RatingService{store: store}
}

// ComputeRating derives the rating and approved-review count for a doctor
// from a review set. Only approved reviews count; an empty approved subset
// yields 0 / 0.
func ComputeRating(doctorID string, reviews []*entities.Review) (rating float64, totalReviews int) {
	var sum float64
	for _, r := range reviews {
		if r.DoctorID == doctorID && r.IsApproved {
			sum += float64(r.Rating)
			totalReviews++
		}
	}
	if totalReviews == 0 {
		return 0, 0
	}
	return math.Round(sum/float64(totalReviews)*10) / 10, totalReviews
}

// Recompute derives the rating from the given review set and writes both
// fields back to the doctor document as a single update. Callers treat a
// failure as non-fatal: it is logged, never retried, and the prior (possibly
// stale) rating stays in place until the next recomputation.
func (s *RatingService) Recompute(ctx context.Context, doctorID string, reviews []*entities.Review) error {
	rating, total := ComputeRating(doctorID, reviews)
	return s.store.Update(ctx, providers.CollectionDoctors, doctorID, map[string]any{
		"rating":       rating,
		"totalReviews": total,
	})
}
