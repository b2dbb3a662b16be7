package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used by tests. It keeps documents as bson.M
// and supports the filter shapes the services actually issue: field equality
// and {$ne: value}, with {$set: ...} updates.
type Memory struct {
	mu          sync.Mutex
	collections map[string][]bson.M
}

func NewMemory() *Memory {
	return &Memory{collections: map[string][]bson.M{}}
}

func (m *Memory) Estates() Collection  { return &memoryCollection{store: m, name: "estate"} }
func (m *Memory) Users() Collection    { return &memoryCollection{store: m, name: "users"} }
func (m *Memory) Offers() Collection   { return &memoryCollection{store: m, name: "offers"} }
func (m *Memory) Reviews() Collection  { return &memoryCollection{store: m, name: "reviews"} }
func (m *Memory) Wishlist() Collection { return &memoryCollection{store: m, name: "wishlist"} }

type memoryCollection struct {
	store *Memory
	name  string
}

func (c *memoryCollection) docs() []bson.M {
	return c.store.collections[c.name]
}

func (c *memoryCollection) FindOne(_ context.Context, filter bson.M, result any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, doc := range c.docs() {
		if matchFilter(doc, filter) {
			return decodeDoc(doc, result)
		}
	}
	return ErrNoDocuments
}

func (c *memoryCollection) Find(_ context.Context, filter bson.M, results any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: Find results must be a pointer to a slice, got %T", results)
	}
	slice := rv.Elem()
	elemType := slice.Type().Elem()
	for _, doc := range c.docs() {
		if !matchFilter(doc, filter) {
			continue
		}
		elem := reflect.New(elemType)
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	rv.Elem().Set(slice)
	return nil
}

func (c *memoryCollection) InsertOne(_ context.Context, doc any) (primitive.ObjectID, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	normalized := bson.M{}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if err := bson.Unmarshal(raw, &normalized); err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := normalized["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		normalized["_id"] = id
	}

	c.store.collections[c.name] = append(c.store.collections[c.name], normalized)
	return id, nil
}

func (c *memoryCollection) UpdateOne(_ context.Context, filter, update bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	for _, doc := range c.docs() {
		if matchFilter(doc, filter) {
			applyUpdate(doc, update)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) UpdateMany(_ context.Context, filter, update bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	var modified int64
	for _, doc := range c.docs() {
		if matchFilter(doc, filter) {
			applyUpdate(doc, update)
			modified++
		}
	}
	return modified, nil
}

func (c *memoryCollection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	docs := c.docs()
	for i, doc := range docs {
		if matchFilter(doc, filter) {
			c.store.collections[c.name] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memoryCollection) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	var kept []bson.M
	var deleted int64
	for _, doc := range c.docs() {
		if matchFilter(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	c.store.collections[c.name] = kept
	return deleted, nil
}

func (c *memoryCollection) CountDocuments(_ context.Context, filter bson.M) (int64, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	var n int64
	for _, doc := range c.docs() {
		if matchFilter(doc, filter) {
			n++
		}
	}
	return n, nil
}

func decodeDoc(doc bson.M, result any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func matchFilter(doc, filter bson.M) bool {
	for field, want := range filter {
		if ops, ok := want.(bson.M); ok {
			for op, arg := range ops {
				switch op {
				case "$ne":
					if valuesEqual(doc[field], arg) {
						return false
					}
				default:
					return false
				}
			}
			continue
		}
		if !valuesEqual(doc[field], want) {
			return false
		}
	}
	return true
}

func applyUpdate(doc, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		for k, v := range set {
			doc[k] = v
		}
	}
}

func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	if at, aok := asTime(a); aok {
		bt, bok := asTime(b)
		return bok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}
