package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/authshell/authshell/internal/core/domain"
)

const defaultKVCollection = "kv"

// KVRepository stores each key as one document: {_id: key, value: "..."}.
type KVRepository struct {
	coll *mongo.Collection
}

// NewKVRepository binds to collection in db; an empty name selects "kv".
func NewKVRepository(db *mongo.Database, collection string) *KVRepository {
	if collection == "" {
		collection = defaultKVCollection
	}
	return &KVRepository{coll: db.Collection(collection)}
}

type kvDocument struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var doc kvDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("find %s: %w", key, err)
	}
	return doc.Value, nil
}

// Set upserts the document for key.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	doc := newKVDocument(key, value, time.Now())
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func newKVDocument(key, value string, now time.Time) kvDocument {
	return kvDocument{Key: key, Value: value, UpdatedAt: now.UTC().Unix()}
}
