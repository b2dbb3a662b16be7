package store

import (
	"context"
	"errors"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) collection(envKey, fallback string) Collection {
	name := os.Getenv(envKey)
	if name == "" {
		name = fallback
	}
	return &mongoCollection{coll: m.db.Collection(name)}
}

func (m *Mongo) Estates() Collection  { return m.collection("MONGODB_COLLECTION_ESTATE", "estate") }
func (m *Mongo) Users() Collection    { return m.collection("MONGODB_COLLECTION_USERS", "users") }
func (m *Mongo) Offers() Collection   { return m.collection("MONGODB_COLLECTION_OFFERS", "offers") }
func (m *Mongo) Reviews() Collection  { return m.collection("MONGODB_COLLECTION_REVIEWS", "reviews") }
func (m *Mongo) Wishlist() Collection { return m.collection("MONGODB_COLLECTION_WISHLIST", "wishlist") }

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) FindOne(ctx context.Context, filter bson.M, result any) error {
	err := c.coll.FindOne(ctx, filter).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocuments
	}
	return err
}

func (c *mongoCollection) Find(ctx context.Context, filter bson.M, results any) error {
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	return cursor.All(ctx, results)
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, nil
	}
	return id, nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *mongoCollection) UpdateMany(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := c.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *mongoCollection) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *mongoCollection) CountDocuments(ctx context.Context, filter bson.M) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}
