package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Defaults for MongoDB URLs that name no database.
const (
	DefaultMongoDatabase   = "graphedit"
	DefaultMongoCollection = "documents"
)

// mongoDocument is the stored form of a graph document. The serialized
// JSON is kept as a string so documents round-trip byte for byte.
type mongoDocument struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps each document in one collection, keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewMongoStore connects to the MongoDB deployment at url. The database is
// taken from the URL path, defaulting to [DefaultMongoDatabase].
func NewMongoStore(ctx context.Context, url string) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(url)
	if err != nil {
		return nil, fmt.Errorf("parse mongodb url: %w", err)
	}
	db := cs.Database
	if db == "" {
		db = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := RetryWithBackoff(ctx, func() error { return mongoErr(client.Ping(ctx, nil)) }); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := NewMongoStoreWithClient(client, db, DefaultMongoCollection)
	s.owned = true
	return s, nil
}

// NewMongoStoreWithClient uses collection coll of database db. Close leaves
// the client connected.
func NewMongoStoreWithClient(client *mongo.Client, db, coll string) *MongoStore {
	return &MongoStore{client: client, coll: client.Database(db).Collection(coll)}
}

// Load reads the document called name.
func (s *MongoStore) Load(ctx context.Context, name string) ([]byte, error) {
	var doc mongoDocument
	err := RetryWithBackoff(ctx, func() error {
		return mongoErr(s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc))
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

// Save upserts the document.
func (s *MongoStore) Save(ctx context.Context, name string, data []byte) error {
	doc := mongoDocument{Name: name, Data: string(data), UpdatedAt: time.Now().UTC()}
	return RetryWithBackoff(ctx, func() error {
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
		return mongoErr(err)
	})
}

// Delete removes the document called name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	var res *mongo.DeleteResult
	err := RetryWithBackoff(ctx, func() error {
		var err error
		res, err = s.coll.DeleteOne(ctx, bson.M{"_id": name})
		return mongoErr(err)
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

// List returns all document names sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

// Close disconnects the client if the store opened it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mongoErr marks network failures and timeouts as retryable.
func mongoErr(err error) error {
	if err != nil && (mongo.IsNetworkError(err) || mongo.IsTimeout(err)) {
		return Retryable(err)
	}
	return err
}

var _ Store = (*MongoStore)(nil)
