package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoDocuments is returned by FindOne when the filter matches nothing.
var ErrNoDocuments = errors.New("store: no documents in result")

// Collection is the slice of the document-store surface the services use.
// Every operation is a single-collection call with single-document atomicity;
// there are no multi-document transactions behind this interface.
type Collection interface {
	FindOne(ctx context.Context, filter bson.M, result any) error
	Find(ctx context.Context, filter bson.M, results any) error
	InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error)
	// UpdateOne returns the matched count.
	UpdateOne(ctx context.Context, filter, update bson.M) (int64, error)
	// UpdateMany returns the modified count.
	UpdateMany(ctx context.Context, filter, update bson.M) (int64, error)
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	CountDocuments(ctx context.Context, filter bson.M) (int64, error)
}

// Store hands out the collections of the estate database.
type Store interface {
	Estates() Collection
	Users() Collection
	Offers() Collection
	Reviews() Collection
	Wishlist() Collection
}
