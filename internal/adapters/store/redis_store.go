package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/clinicbook/admin-console/internal/domain/providers"
	redisclient "github.com/clinicbook/admin-console/internal/infrastructure/clients/redis"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// RedisStore implements DocumentStore on Redis. Each collection is a hash of
// id to JSON-encoded fields; every write publishes a change notification, and
// each notified subscriber re-reads the full hash and receives it as the next
// snapshot.
type RedisStore struct {
	client *redisclient.Client

	mu       sync.Mutex
	subs     map[string]map[*redisSub]struct{}
	channels map[string]*redis.PubSub

	ctx    context.Context
	cancel context.CancelFunc
}

type redisSub struct {
	filter providers.Predicate
	seq    uint64
	handle *providers.Subscription
}

// NewRedisStore creates a Redis-backed document store.
func NewRedisStore(client *redisclient.Client) *RedisStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisStore{
		client:   client,
		subs:     make(map[string]map[*redisSub]struct{}),
		channels: make(map[string]*redis.PubSub),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func collectionKey(collection string) string {
	return "docs:" + collection
}

func changeChannel(collection string) string {
	return "docs:" + collection + ":changed"
}

// Subscribe opens a subscription, delivering the current snapshot first.
func (s *RedisStore) Subscribe(ctx context.Context, collection string, filter providers.Predicate) (*providers.Subscription, error) {
	docs, err := s.readAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sub := &redisSub{filter: filter}
	sub.handle = providers.NewSubscription(func() {
		s.removeSub(collection, sub)
	})

	if s.subs[collection] == nil {
		s.subs[collection] = make(map[*redisSub]struct{})
		pubsub := s.client.Client().Subscribe(s.ctx, changeChannel(collection))
		s.channels[collection] = pubsub
		go s.receiveChanges(collection, pubsub)
	}
	s.subs[collection][sub] = struct{}{}

	sub.seq++
	sub.handle.Deliver(providers.Snapshot{Collection: collection, Seq: sub.seq, Docs: filterDocs(docs, filter)})
	s.mu.Unlock()

	return sub.handle, nil
}

// receiveChanges re-reads the collection on every change notification and
// fans the fresh snapshot out to all subscribers.
func (s *RedisStore) receiveChanges(collection string, pubsub *redis.PubSub) {
	ch := pubsub.Channel()
	for {
		select {
		case <-s.ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}

			docs, err := s.readAll(s.ctx, collection)
			if err != nil {
				log.Warn().Err(err).Str("collection", collection).Msg("failed to refresh snapshot after change")
				continue
			}

			s.mu.Lock()
			for sub := range s.subs[collection] {
				sub.seq++
				sub.handle.Deliver(providers.Snapshot{
					Collection: collection,
					Seq:        sub.seq,
					Docs:       filterDocs(docs, sub.filter),
				})
			}
			s.mu.Unlock()
		}
	}
}

func (s *RedisStore) removeSub(collection string, sub *redisSub) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.subs[collection]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(s.subs, collection)
		if pubsub, ok := s.channels[collection]; ok {
			_ = pubsub.Close()
			delete(s.channels, collection)
		}
	}
}

// Get retrieves a single document.
func (s *RedisStore) Get(ctx context.Context, collection, id string) (providers.Document, error) {
	raw, err := s.client.Client().HGet(ctx, collectionKey(collection), id).Result()
	if err == redis.Nil {
		return providers.Document{}, apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	if err != nil {
		return providers.Document{}, apperrors.NewStoreError("failed to read document", err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return providers.Document{}, apperrors.NewStoreError("failed to decode document", err)
	}
	return providers.Document{ID: id, Fields: fields}, nil
}

// Add inserts a new document and publishes a change notification.
func (s *RedisStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	if err := s.write(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges a partial field patch into an existing document.
func (s *RedisStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	current, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	for k, v := range patch {
		current.Fields[k] = v
	}
	return s.write(ctx, collection, id, current.Fields)
}

// Delete removes a document and publishes a change notification.
func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	removed, err := s.client.Client().HDel(ctx, collectionKey(collection), id).Result()
	if err != nil {
		return apperrors.NewStoreError("failed to delete document", err)
	}
	if removed == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	return s.publishChange(ctx, collection, id)
}

// Close stops all change listeners and releases subscriptions.
func (s *RedisStore) Close() error {
	s.cancel()

	s.mu.Lock()
	handles := make([]*providers.Subscription, 0)
	for _, set := range s.subs {
		for sub := range set {
			handles = append(handles, sub.handle)
		}
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Unsubscribe()
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, collection, id string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return apperrors.NewStoreError("failed to encode document", err)
	}
	if err := s.client.Client().HSet(ctx, collectionKey(collection), id, data).Err(); err != nil {
		return apperrors.NewStoreError("failed to write document", err)
	}
	return s.publishChange(ctx, collection, id)
}

func (s *RedisStore) publishChange(ctx context.Context, collection, id string) error {
	if err := s.client.Client().Publish(ctx, changeChannel(collection), id).Err(); err != nil {
		return apperrors.NewStoreError("failed to publish change notification", err)
	}
	return nil
}

func (s *RedisStore) readAll(ctx context.Context, collection string) ([]providers.Document, error) {
	raw, err := s.client.Client().HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read collection", err)
	}

	docs := make([]providers.Document, 0, len(raw))
	for id, payload := range raw {
		var fields map[string]any
		if err := json.Unmarshal([]byte(payload), &fields); err != nil {
			log.Warn().Str("collection", collection).Str("id", id).Msg("skipping undecodable document")
			continue
		}
		docs = append(docs, providers.Document{ID: id, Fields: fields})
	}
	return docs, nil
}

func filterDocs(docs []providers.Document, filter providers.Predicate) []providers.Document {
	if filter == nil {
		return docs
	}
	out := make([]providers.Document, 0, len(docs))
	for _, doc := range docs {
		if filter(doc) {
			out = append(out, doc)
		}
	}
	return out
}
