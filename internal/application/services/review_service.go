package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	"github.com/clinicbook/admin-console/internal/domain/repositories"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// ReviewSource supplies the caller's current review projection. The
// moderation actions recompute ratings from this client-observed set, not
// from an authoritative query.
type ReviewSource interface {
	Reviews() []*entities.Review
}

// ReviewService moderates patient reviews. Approving, disapproving or
// deleting a review unconditionally triggers rating recomputation for the
// review's doctor; a recomputation failure is logged, never surfaced, since
// the moderation write itself already landed.
type ReviewService struct {
	store  providers.DocumentStore
	source ReviewSource
	rating *RatingService
	audit  repositories.AuditRepository
}

// NewReviewService creates a new review moderation service. audit may be nil.
func NewReviewService(store providers.DocumentStore, source ReviewSource, rating *RatingService, audit repositories.AuditRepository) *ReviewService {
	return &ReviewService{store: store, source: source, rating: rating, audit: audit}
}

// Approve marks a review approved and recomputes the doctor's rating.
func (s *ReviewService) Approve(ctx context.Context, id string) error {
	return s.setApproval(ctx, id, true, "review.approve")
}

// Disapprove marks a review not approved and recomputes the doctor's rating.
func (s *ReviewService) Disapprove(ctx context.Context, id string) error {
	return s.setApproval(ctx, id, false, "review.disapprove")
}

func (s *ReviewService) setApproval(ctx context.Context, id string, approved bool, action string) error {
	review, ok := s.find(id)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review %s not found", id))
	}

	if err := s.store.Update(ctx, providers.CollectionReviews, id, map[string]any{"isApproved": approved}); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, action, providers.CollectionReviews, id, "")

	// The projection has not observed our own write yet, so overlay it on
	// the current set before recomputing.
	post := s.overlayApproval(id, approved)
	s.recompute(ctx, review.DoctorID, post)
	return nil
}

// Delete removes a review, then recomputes its doctor's rating from the
// remaining set.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	review, ok := s.find(id)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("review %s not found", id))
	}

	if err := s.store.Delete(ctx, providers.CollectionReviews, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, "review.delete", providers.CollectionReviews, id, "")

	remaining := make([]*entities.Review, 0)
	for _, r := range s.source.Reviews() {
		if r.ID != id {
			remaining = append(remaining, r)
		}
	}
	s.recompute(ctx, review.DoctorID, remaining)
	return nil
}

func (s *ReviewService) find(id string) (*entities.Review, bool) {
	for _, r := range s.source.Reviews() {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

func (s *ReviewService) overlayApproval(id string, approved bool) []*entities.Review {
	current := s.source.Reviews()
	out := make([]*entities.Review, 0, len(current))
	for _, r := range current {
		if r.ID == id {
			changed := *r
			changed.IsApproved = approved
			out = append(out, &changed)
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *ReviewService) recompute(ctx context.Context, doctorID string, reviews []*entities.Review) {
	if err := s.rating.Recompute(ctx, doctorID, reviews); err != nil {
		log.Warn().Err(err).Str("doctor_id", doctorID).Msg("failed to recompute doctor rating")
	}
}
