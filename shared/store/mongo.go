package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	db *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &Mongo{db: client.Database(dbName)}, nil
}

// NewMongo wraps an existing database handle.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// docKey turns an id into the stored _id value: inserted documents carry
// ObjectIDs, singleton documents use plain string ids.
func docKey(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func (m *Mongo) Get(ctx context.Context, collection, id string, out any) (bool, error) {
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": docKey(id)}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return true, nil
}

func (m *Mongo) Set(ctx context.Context, collection, id string, doc any, merge bool) error {
	coll := m.db.Collection(collection)
	if merge {
		_, err := coll.UpdateOne(ctx,
			bson.M{"_id": docKey(id)},
			bson.M{"$set": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to merge %s/%s: %w", collection, id, err)
		}
		return nil
	}
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": docKey(id)}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (m *Mongo) Query(ctx context.Context, collection string, filter map[string]any, out any, opts QueryOpts) error {
	f := bson.M{}
	for k, v := range filter {
		f[k] = v
	}

	findOpts := options.Find()
	if opts.SortBy != "" {
		order := 1
		if opts.Desc {
			order = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: order}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := m.db.Collection(collection).Find(ctx, f, findOpts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s results: %w", collection, err)
	}
	return nil
}
