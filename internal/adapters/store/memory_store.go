package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/clinicbook/admin-console/internal/domain/providers"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// MemoryStore is an in-process DocumentStore. Snapshots are delivered
// synchronously before each mutating call returns, which makes it the store of
// choice for tests and local development.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	subs        map[string]map[*memorySub]struct{}
	closed      bool
}

type memorySub struct {
	filter providers.Predicate
	seq    uint64
	handle *providers.Subscription
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]any),
		subs:        make(map[string]map[*memorySub]struct{}),
	}
}

// Subscribe opens a subscription and delivers the current snapshot before
// returning.
func (s *MemoryStore) Subscribe(ctx context.Context, collection string, filter providers.Predicate) (*providers.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, apperrors.NewStoreError("store is closed", nil)
	}

	sub := &memorySub{filter: filter}
	sub.handle = providers.NewSubscription(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if set, ok := s.subs[collection]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(s.subs, collection)
			}
		}
	})

	if s.subs[collection] == nil {
		s.subs[collection] = make(map[*memorySub]struct{})
	}
	s.subs[collection][sub] = struct{}{}

	s.deliverLocked(collection, sub)
	return sub.handle, nil
}

// Get retrieves a single document.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (providers.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return providers.Document{}, apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	return providers.Document{ID: id, Fields: cloneFields(fields)}, nil
}

// Add inserts a new document and notifies subscribers.
func (s *MemoryStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	s.collections[collection][id] = cloneFields(fields)
	s.broadcastLocked(collection)
	return id, nil
}

// Update applies a partial field patch. Stored field maps are copied on write
// so previously delivered snapshots stay immutable.
func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[collection][id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}

	next := cloneFields(current)
	for k, v := range patch {
		next[k] = v
	}
	s.collections[collection][id] = next
	s.broadcastLocked(collection)
	return nil
}

// Delete removes a document and notifies subscribers.
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	delete(s.collections[collection], id)
	s.broadcastLocked(collection)
	return nil
}

// Close releases all subscriptions.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	subs := make([]*providers.Subscription, 0)
	for _, set := range s.subs {
		for sub := range set {
			subs = append(subs, sub.handle)
		}
	}
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	return nil
}

func (s *MemoryStore) broadcastLocked(collection string) {
	for sub := range s.subs[collection] {
		s.deliverLocked(collection, sub)
	}
}

func (s *MemoryStore) deliverLocked(collection string, sub *memorySub) {
	docs := make([]providers.Document, 0, len(s.collections[collection]))
	for id, fields := range s.collections[collection] {
		doc := providers.Document{ID: id, Fields: fields}
		if sub.filter != nil && !sub.filter(doc) {
			continue
		}
		docs = append(docs, doc)
	}
	sub.seq++
	sub.handle.Deliver(providers.Snapshot{
		Collection: collection,
		Seq:        sub.seq,
		Docs:       docs,
	})
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
