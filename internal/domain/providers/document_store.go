package providers

import (
	"context"
	"sync"
)

// Collection names owned by the booking platform.
const (
	CollectionDoctors      = "doctors"
	CollectionAppointments = "appointments"
	CollectionReviews      = "reviews"
	CollectionUsers        = "users"
	CollectionAdmins       = "admins"
)

// Document is a single member of a collection: an opaque id plus its raw
// field set, exactly as persisted.
type Document struct {
	ID     string
	Fields map[string]any
}

// Predicate filters which documents a subscription observes. A nil predicate
// matches everything.
type Predicate func(Document) bool

// Snapshot is a full point-in-time listing of a collection's current members
// (after predicate filtering). Every snapshot is authoritative full state, not
// a delta; reapplying one is idempotent. Seq increases per subscription.
type Snapshot struct {
	Collection string
	Seq        uint64
	Docs       []Document
}

// DocumentStore is the remote collection collaborator. Writes are
// last-write-wins; causal ordering of one writer's successive writes to the
// same document is assumed, not verified.
type DocumentStore interface {
	// Subscribe opens a push-based subscription to a collection. The current
	// snapshot is delivered first, then a new snapshot follows every
	// add/update/remove of any member.
	Subscribe(ctx context.Context, collection string, filter Predicate) (*Subscription, error)

	// Get retrieves a single document.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Add inserts a new document and returns its id.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Update applies a partial field patch to an existing document.
	Update(ctx context.Context, collection, id string, patch map[string]any) error

	// Delete removes a document. Deletion is immediate and irreversible.
	Delete(ctx context.Context, collection, id string) error

	// Close releases all subscriptions and backing resources.
	Close() error
}

// Subscription is the handle for one open subscription. Consumers must call
// Unsubscribe when the consuming view is torn down.
type Subscription struct {
	ch     chan Snapshot
	cancel func()
	once   sync.Once

	mu     sync.Mutex
	closed bool
}

// NewSubscription creates a subscription handle delivering on a single-slot
// channel; stores coalesce by replacing an unconsumed snapshot with the newer
// one. cancel is invoked exactly once, on Unsubscribe.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{
		ch:     make(chan Snapshot, 1),
		cancel: cancel,
	}
}

// Snapshots returns the snapshot delivery channel. It is closed after
// Unsubscribe.
func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.ch
}

// Deliver offers a snapshot, replacing any unconsumed one. Store adapters call
// this; consumers never do. Delivery after Unsubscribe is a no-op.
func (s *Subscription) Deliver(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Unsubscribe stops delivery and releases resources. Safe to call more than
// once and safe to call during consumer teardown.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.ch)
	})
}
