// Package mongo provides a core.SessionStore backed by MongoDB, persisting
// screening transcripts durably: one document per session holding the ordered
// turn array and cached context values.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lokiteck/dspagent/core"
)

// Default database / collection names.
const (
	DefaultDatabase   = "dspagent"
	DefaultCollection = "screening_transcripts"
)

// Options configure the Mongo session store.
type Options struct {
	Database   string
	Collection string
}

// Store implements core.SessionStore on a MongoDB collection. Per-session
// mutual exclusion is the agent's concern; the store relies on MongoDB's
// single-document atomicity so one Append call lands its turns contiguously.
type Store struct {
	coll *mongo.Collection
}

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*Store)(nil)

// NewStore wraps an existing Mongo client.
func NewStore(client *mongo.Client, optFns ...func(o *Options)) *Store {
	opts := Options{Database: DefaultDatabase, Collection: DefaultCollection}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{coll: client.Database(opts.Database).Collection(opts.Collection)}
}

// sessionDoc is the stored document shape.
type sessionDoc struct {
	ID      string            `bson:"_id"`
	Turns   []core.Turn       `bson:"turns"`
	Context map[string]string `bson:"context"`
	Created time.Time         `bson:"created"`
	Updated time.Time         `bson:"updated"`
}

func (d sessionDoc) toSession() *core.Session {
	sess := core.NewSession(d.ID)
	sess.Turns = append(sess.Turns, d.Turns...)
	for k, v := range d.Context {
		sess.Context[k] = v
	}
	sess.Created = d.Created
	sess.Updated = d.Updated
	return sess
}

// GetOrCreate implements core.SessionStore via an upsert that inserts an
// empty transcript on first use and returns the post-image.
func (s *Store) GetOrCreate(ctx context.Context, sessionID string) (*core.Session, error) {
	now := time.Now().UTC()
	filter := bson.M{"_id": sessionID}
	update := bson.M{"$setOnInsert": bson.M{
		"turns":   []core.Turn{},
		"context": map[string]string{},
		"created": now,
		"updated": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc sessionDoc
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("mongo get or create session %q: %w", sessionID, err)
	}
	return doc.toSession(), nil
}

// Append implements core.SessionStore. The $each push keeps all turns of one
// call contiguous within the single document write.
func (s *Store) Append(ctx context.Context, sessionID string, turns ...core.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	now := time.Now().UTC()
	filter := bson.M{"_id": sessionID}
	update := bson.M{
		"$push":        bson.M{"turns": bson.M{"$each": turns}},
		"$set":         bson.M{"updated": now},
		"$setOnInsert": bson.M{"context": map[string]string{}, "created": now},
	}
	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongo append to session %q: %w", sessionID, err)
	}
	return nil
}

// History implements core.SessionStore. An unknown session has empty history.
func (s *Store) History(ctx context.Context, sessionID string) ([]core.Turn, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []core.Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo load session %q: %w", sessionID, err)
	}
	return doc.Turns, nil
}

// SetContext implements core.SessionStore.
func (s *Store) SetContext(ctx context.Context, sessionID, key, value string) error {
	now := time.Now().UTC()
	filter := bson.M{"_id": sessionID}
	update := bson.M{
		"$set":         bson.M{"context." + key: value, "updated": now},
		"$setOnInsert": bson.M{"turns": []core.Turn{}, "created": now},
	}
	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongo set context on session %q: %w", sessionID, err)
	}
	return nil
}

// GetContext implements core.SessionStore.
func (s *Store) GetContext(ctx context.Context, sessionID, key string) (string, bool, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo load session %q: %w", sessionID, err)
	}
	v, ok := doc.Context[key]
	return v, ok, nil
}

// Clear implements core.SessionStore. Clearing an unknown session is a no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("mongo clear session %q: %w", sessionID, err)
	}
	return nil
}
