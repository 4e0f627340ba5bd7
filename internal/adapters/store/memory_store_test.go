package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/admin-console/internal/adapters/store"
	"github.com/clinicbook/admin-console/internal/domain/providers"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

func TestMemoryStore_SubscribeDeliversInitialSnapshot(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	id, err := s.Add(ctx, providers.CollectionDoctors, map[string]any{"name": "Dr. Karim"})
	require.NoError(t, err)

	sub, err := s.Subscribe(ctx, providers.CollectionDoctors, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	snap := <-sub.Snapshots()
	assert.Equal(t, providers.CollectionDoctors, snap.Collection)
	require.Len(t, snap.Docs, 1)
	assert.Equal(t, id, snap.Docs[0].ID)
	assert.Equal(t, "Dr. Karim", snap.Docs[0].Fields["name"])
}

func TestMemoryStore_MutationsProduceFullSnapshots(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	sub, err := s.Subscribe(ctx, providers.CollectionDoctors, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	// Drain the initial empty snapshot.
	snap := <-sub.Snapshots()
	assert.Empty(t, snap.Docs)

	id, err := s.Add(ctx, providers.CollectionDoctors, map[string]any{"name": "Dr. Karim"})
	require.NoError(t, err)

	snap = <-sub.Snapshots()
	require.Len(t, snap.Docs, 1)

	require.NoError(t, s.Delete(ctx, providers.CollectionDoctors, id))
	snap = <-sub.Snapshots()
	assert.Empty(t, snap.Docs)
}

func TestMemoryStore_CoalescesUnconsumedSnapshots(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	sub, err := s.Subscribe(ctx, providers.CollectionDoctors, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	// Initial snapshot sits unconsumed; each mutation replaces it.
	_, err = s.Add(ctx, providers.CollectionDoctors, map[string]any{"name": "Dr. Karim"})
	require.NoError(t, err)
	_, err = s.Add(ctx, providers.CollectionDoctors, map[string]any{"name": "Dr. Rahim"})
	require.NoError(t, err)

	snap := <-sub.Snapshots()
	assert.Len(t, snap.Docs, 2, "only the latest full snapshot is retained")

	select {
	case extra, ok := <-sub.Snapshots():
		if ok {
			t.Fatalf("unexpected extra snapshot: %+v", extra)
		}
	default:
	}
}

func TestMemoryStore_SubscriptionFilter(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	_, err := s.Add(ctx, providers.CollectionReviews, map[string]any{"doctorId": "d1"})
	require.NoError(t, err)
	_, err = s.Add(ctx, providers.CollectionReviews, map[string]any{"doctorId": "d2"})
	require.NoError(t, err)

	sub, err := s.Subscribe(ctx, providers.CollectionReviews, func(d providers.Document) bool {
		return d.Fields["doctorId"] == "d1"
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	snap := <-sub.Snapshots()
	require.Len(t, snap.Docs, 1)
	assert.Equal(t, "d1", snap.Docs[0].Fields["doctorId"])
}

func TestMemoryStore_UpdatePatchesFields(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	id, err := s.Add(ctx, providers.CollectionDoctors, map[string]any{
		"name":   "Dr. Karim",
		"rating": 4.0,
	})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, providers.CollectionDoctors, id, map[string]any{"rating": 4.5}))

	doc, err := s.Get(ctx, providers.CollectionDoctors, id)
	require.NoError(t, err)
	assert.Equal(t, 4.5, doc.Fields["rating"])
	assert.Equal(t, "Dr. Karim", doc.Fields["name"], "unpatched fields survive")
}

func TestMemoryStore_NotFoundErrors(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	_, err := s.Get(ctx, providers.CollectionDoctors, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	err = s.Update(ctx, providers.CollectionDoctors, "missing", map[string]any{"x": 1})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	err = s.Delete(ctx, providers.CollectionDoctors, "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestMemoryStore_UnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	sub, err := s.Subscribe(ctx, providers.CollectionDoctors, nil)
	require.NoError(t, err)

	<-sub.Snapshots()
	sub.Unsubscribe()

	// Mutations after unsubscribe must not panic or deliver.
	_, err = s.Add(ctx, providers.CollectionDoctors, map[string]any{"name": "Dr. Karim"})
	require.NoError(t, err)

	_, open := <-sub.Snapshots()
	assert.False(t, open, "channel is closed after unsubscribe")
}

func TestMemoryStore_CloseRejectsNewSubscriptions(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Close())

	_, err := s.Subscribe(ctx, providers.CollectionDoctors, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStore))
}

func TestMemoryStore_SnapshotsNotAliasedToLiveState(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()

	id, err := s.Add(ctx, providers.CollectionDoctors, map[string]any{"rating": 4.0})
	require.NoError(t, err)

	sub, err := s.Subscribe(ctx, providers.CollectionDoctors, nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	snap := <-sub.Snapshots()
	require.NoError(t, s.Update(ctx, providers.CollectionDoctors, id, map[string]any{"rating": 1.0}))

	assert.Equal(t, 4.0, snap.Docs[0].Fields["rating"], "delivered snapshot stays immutable")
}
