package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicbook/admin-console/internal/domain/providers"
	mongoclient "github.com/clinicbook/admin-console/internal/infrastructure/clients/mongo"
	apperrors "github.com/clinicbook/admin-console/pkg/errors"
)

// MongoStore implements DocumentStore on MongoDB. Each subscription opens a
// change stream on its collection; any change triggers a full re-read that is
// delivered as the next snapshot. Change streams require a replica set.
type MongoStore struct {
	client *mongoclient.Client

	ctx    context.Context
	cancel context.CancelFunc
}

// NewMongoStore creates a Mongo-backed document store.
func NewMongoStore(client *mongoclient.Client) *MongoStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &MongoStore{client: client, ctx: ctx, cancel: cancel}
}

// Subscribe opens a change-stream-driven subscription, delivering the current
// snapshot first.
func (s *MongoStore) Subscribe(ctx context.Context, collection string, filter providers.Predicate) (*providers.Subscription, error) {
	coll := s.client.Collection(collection)

	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to open change stream", err)
	}

	streamCtx, stopStream := context.WithCancel(s.ctx)
	sub := providers.NewSubscription(stopStream)

	docs, err := s.readAll(ctx, collection)
	if err != nil {
		stopStream()
		_ = stream.Close(context.Background())
		return nil, err
	}

	var seq uint64 = 1
	sub.Deliver(providers.Snapshot{Collection: collection, Seq: seq, Docs: filterDocs(docs, filter)})

	go func() {
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = stream.Close(closeCtx)
		}()

		for stream.Next(streamCtx) {
			docs, err := s.readAll(streamCtx, collection)
			if err != nil {
				log.Warn().Err(err).Str("collection", collection).Msg("failed to refresh snapshot after change")
				continue
			}
			seq++
			sub.Deliver(providers.Snapshot{Collection: collection, Seq: seq, Docs: filterDocs(docs, filter)})
		}
	}()

	return sub, nil
}

// Get retrieves a single document.
func (s *MongoStore) Get(ctx context.Context, collection, id string) (providers.Document, error) {
	var raw bson.M
	err := s.client.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return providers.Document{}, apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	if err != nil {
		return providers.Document{}, apperrors.NewStoreError("failed to read document", err)
	}
	return docFromBSON(raw), nil
}

// Add inserts a new document.
func (s *MongoStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.New().String()
	doc := bson.M{"_id": id}
	for k, v := range fields {
		doc[k] = v
	}
	if _, err := s.client.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", apperrors.NewStoreError("failed to insert document", err)
	}
	return id, nil
}

// Update applies a partial field patch to an existing document.
func (s *MongoStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	res, err := s.client.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return apperrors.NewStoreError("failed to update document", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	return nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.client.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.NewStoreError("failed to delete document", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s/%s not found", collection, id))
	}
	return nil
}

// Close stops all change streams.
func (s *MongoStore) Close() error {
	s.cancel()
	return nil
}

func (s *MongoStore) readAll(ctx context.Context, collection string) ([]providers.Document, error) {
	cursor, err := s.client.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read collection", err)
	}
	defer cursor.Close(ctx)

	var docs []providers.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			log.Warn().Err(err).Str("collection", collection).Msg("skipping undecodable document")
			continue
		}
		docs = append(docs, docFromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.NewStoreError("failed to iterate collection", err)
	}
	return docs, nil
}

// docFromBSON converts a BSON document into the store's neutral field map,
// normalizing driver-specific types into plain Go values.
func docFromBSON(raw bson.M) providers.Document {
	id, _ := raw["_id"].(string)
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		fields[k] = normalizeBSON(v)
	}
	return providers.Document{ID: id, Fields: fields}
}

func normalizeBSON(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time()
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeBSON(item)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeBSON(item)
		}
		return out
	default:
		return v
	}
}
