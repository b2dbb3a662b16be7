package store

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Status string             `bson:"status"`
}

func TestMemoryInsertAndFindOne(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	id, err := mem.Offers().InsertOne(ctx, testDoc{Name: "a", Status: "pending"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id.IsZero() {
		t.Fatal("no id generated")
	}

	var got testDoc
	if err := mem.Offers().FindOne(ctx, bson.M{"_id": id}, &got); err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "a" || got.Status != "pending" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	err = mem.Offers().FindOne(ctx, bson.M{"_id": primitive.NewObjectID()}, &got)
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("got %v, want ErrNoDocuments", err)
	}
}

func TestMemoryUpdateManyWithNeFilter(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	a, _ := mem.Offers().InsertOne(ctx, testDoc{Name: "a", Status: "pending"})
	b, _ := mem.Offers().InsertOne(ctx, testDoc{Name: "b", Status: "pending"})
	c, _ := mem.Offers().InsertOne(ctx, testDoc{Name: "c", Status: "accepted"})

	modified, err := mem.Offers().UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": a}},
		bson.M{"$set": bson.M{"status": "rejected"}})
	if err != nil {
		t.Fatalf("update many: %v", err)
	}
	if modified != 2 {
		t.Errorf("modified: got %d, want 2", modified)
	}

	var got testDoc
	mem.Offers().FindOne(ctx, bson.M{"_id": a}, &got)
	if got.Status != "pending" {
		t.Errorf("excluded doc modified: %q", got.Status)
	}
	for _, id := range []primitive.ObjectID{b, c} {
		mem.Offers().FindOne(ctx, bson.M{"_id": id}, &got)
		if got.Status != "rejected" {
			t.Errorf("doc %s: got %q, want rejected", id.Hex(), got.Status)
		}
	}
}

func TestMemoryDeleteMany(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	mem.Reviews().InsertOne(ctx, testDoc{Name: "x", Status: "keep"})
	mem.Reviews().InsertOne(ctx, testDoc{Name: "y", Status: "drop"})
	mem.Reviews().InsertOne(ctx, testDoc{Name: "z", Status: "drop"})

	deleted, err := mem.Reviews().DeleteMany(ctx, bson.M{"status": "drop"})
	if err != nil {
		t.Fatalf("delete many: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted: got %d, want 2", deleted)
	}

	n, _ := mem.Reviews().CountDocuments(ctx, bson.M{})
	if n != 1 {
		t.Errorf("remaining: got %d, want 1", n)
	}

	// Deleting the same set again is a no-op.
	deleted, _ = mem.Reviews().DeleteMany(ctx, bson.M{"status": "drop"})
	if deleted != 0 {
		t.Errorf("re-delete: got %d, want 0", deleted)
	}
}

func TestMemoryFindDecodesSlice(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	mem.Users().InsertOne(ctx, testDoc{Name: "a", Status: "buyer"})
	mem.Users().InsertOne(ctx, testDoc{Name: "b", Status: "agent"})

	var all []testDoc
	if err := mem.Users().Find(ctx, bson.M{}, &all); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d docs, want 2", len(all))
	}

	var agents []testDoc
	if err := mem.Users().Find(ctx, bson.M{"status": "agent"}, &agents); err != nil {
		t.Fatalf("find filtered: %v", err)
	}
	if len(agents) != 1 || agents[0].Name != "b" {
		t.Errorf("filtered find mismatch: %+v", agents)
	}
}
