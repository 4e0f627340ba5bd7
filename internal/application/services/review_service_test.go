package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/admin-console/internal/adapters/store"
	"github.com/clinicbook/admin-console/internal/application/services"
	"github.com/clinicbook/admin-console/internal/domain/entities"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// staticReviews is a fixed projection of the review collection.
type staticReviews []*entities.Review

func (r staticReviews) Reviews() []*entities.Review { return r }

type reviewFixture struct {
	store   *store.MemoryStore
	service *services.ReviewService

	doctorID string
	reviews  map[string]string // name -> store id
}

// newReviewFixture seeds one doctor and three of its reviews: two approved
// (ratings 5 and 3) and one pending (rating 1).
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	t.Cleanup(func() { s.Close() })

	doctorID, err := s.Add(ctx, providers.CollectionDoctors, map[string]any{
		"name":         "Dr. Karim",
		"rating":       4.0,
		"totalReviews": 2,
	})
	require.NoError(t, err)

	seed := []struct {
		name     string
		rating   int
		approved bool
	}{
		{"high", 5, true},
		{"mid", 3, true},
		{"low", 1, false},
	}

	ids := make(map[string]string, len(seed))
	source := make(staticReviews, 0, len(seed))
	for _, r := range seed {
		id, err := s.Add(ctx, providers.CollectionReviews, map[string]any{
			"doctorId":   doctorID,
			"rating":     r.rating,
			"isApproved": r.approved,
		})
		require.NoError(t, err)
		ids[r.name] = id
		source = append(source, &entities.Review{
			ID:         id,
			DoctorID:   doctorID,
			Rating:     r.rating,
			IsApproved: r.approved,
		})
	}

	rating := services.NewRatingService(s)
	return &reviewFixture{
		store:    s,
		service:  services.NewReviewService(s, source, rating, nil),
		doctorID: doctorID,
		reviews:  ids,
	}
}

func (f *reviewFixture) doctor(t *testing.T) *entities.Doctor {
	t.Helper()
	doc, err := f.store.Get(context.Background(), providers.CollectionDoctors, f.doctorID)
	require.NoError(t, err)
	return entities.DoctorFromDocument(doc.ID, doc.Fields)
}

func (f *reviewFixture) review(t *testing.T, name string) *entities.Review {
	t.Helper()
	doc, err := f.store.Get(context.Background(), providers.CollectionReviews, f.reviews[name])
	require.NoError(t, err)
	return entities.ReviewFromDocument(doc.ID, doc.Fields)
}

func TestReviewService_ApproveRecomputesRating(t *testing.T) {
	f := newReviewFixture(t)

	// Approving the pending 1-star review shifts (5+3)/2 = 4.0 to (5+3+1)/3 = 3.0.
	require.NoError(t, f.service.Approve(context.Background(), f.reviews["low"]))

	assert.True(t, f.review(t, "low").IsApproved)
	doctor := f.doctor(t)
	assert.Equal(t, 3.0, doctor.Rating)
	assert.Equal(t, 3, doctor.TotalReviews)
}

func TestReviewService_DisapproveRecomputesRating(t *testing.T) {
	f := newReviewFixture(t)

	// Pulling the 3-star review leaves only the 5-star one.
	require.NoError(t, f.service.Disapprove(context.Background(), f.reviews["mid"]))

	assert.False(t, f.review(t, "mid").IsApproved)
	doctor := f.doctor(t)
	assert.Equal(t, 5.0, doctor.Rating)
	assert.Equal(t, 1, doctor.TotalReviews)
}

func TestReviewService_DeleteRecomputesFromRemaining(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.Delete(ctx, f.reviews["high"]))

	_, err := f.store.Get(ctx, providers.CollectionReviews, f.reviews["high"])
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	doctor := f.doctor(t)
	assert.Equal(t, 3.0, doctor.Rating)
	assert.Equal(t, 1, doctor.TotalReviews)
}

func TestReviewService_DeleteLastApprovedReviewZeroesRating(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	doctorID, err := s.Add(ctx, providers.CollectionDoctors, map[string]any{
		"name":         "Dr. Karim",
		"rating":       5.0,
		"totalReviews": 1,
	})
	require.NoError(t, err)
	reviewID, err := s.Add(ctx, providers.CollectionReviews, map[string]any{
		"doctorId":   doctorID,
		"rating":     5,
		"isApproved": true,
	})
	require.NoError(t, err)

	source := staticReviews{{ID: reviewID, DoctorID: doctorID, Rating: 5, IsApproved: true}}
	service := services.NewReviewService(s, source, services.NewRatingService(s), nil)

	require.NoError(t, service.Delete(ctx, reviewID))

	// The approved subset is now empty, so both fields reset.
	doc, err := s.Get(ctx, providers.CollectionDoctors, doctorID)
	require.NoError(t, err)
	doctor := entities.DoctorFromDocument(doc.ID, doc.Fields)
	assert.Equal(t, 0.0, doctor.Rating)
	assert.Equal(t, 0, doctor.TotalReviews)
}

func TestReviewService_MissingReviewIsNotFound(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	err := f.service.Approve(ctx, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	err = f.service.Delete(ctx, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	// The stale rating from the fixture seed stays untouched.
	assert.Equal(t, 4.0, f.doctor(t).Rating)
}

func TestReviewService_RecomputeFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	// The review's doctor document does not exist, so the rating write fails.
	reviewID, err := s.Add(ctx, providers.CollectionReviews, map[string]any{
		"doctorId":   "ghost-doctor",
		"rating":     5,
		"isApproved": false,
	})
	require.NoError(t, err)

	source := staticReviews{{ID: reviewID, DoctorID: "ghost-doctor", Rating: 5}}
	service := services.NewReviewService(s, source, services.NewRatingService(s), nil)

	// The moderation write landed; the recompute failure is logged only.
	assert.NoError(t, service.Approve(ctx, reviewID))

	review, err := s.Get(ctx, providers.CollectionReviews, reviewID)
	require.NoError(t, err)
	assert.Equal(t, true, review.Fields["isApproved"])
}
