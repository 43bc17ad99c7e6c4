package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a goroutine-safe in-process Store. Documents are held as BSON maps so that
// field names follow the same bson tags the Mongo backend uses.
type MemoryStore struct {
	mu    sync.RWMutex
	colls map[string]map[string]bson.M
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{colls: make(map[string]map[string]bson.M)}
}

func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

func (s *MemoryStore) Ping(ctx context.Context) error  { return nil }
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

type memoryCollection struct {
	store *MemoryStore
	name  string
}

// docs must be called with the store lock held.
func (c *memoryCollection) docs() map[string]bson.M {
	docs, ok := c.store.colls[c.name]
	if !ok {
		docs = make(map[string]bson.M)
		c.store.colls[c.name] = docs
	}
	return docs
}

func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromDocument(m bson.M, dst any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, dst)
}

// toValue converts a Go value into the representation it would have after a BSON round-trip.
func toValue(v any) (any, error) {
	m, err := toDocument(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return m["v"], nil
}

func (c *memoryCollection) Get(ctx context.Context, id string, dst any) error {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	doc, ok := c.docs()[id]
	if !ok {
		return ErrNotFound
	}
	return fromDocument(doc, dst)
}

func (c *memoryCollection) Create(ctx context.Context, id string, doc any) error {
	m, err := toDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", c.name, id, err)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.docs()
	if _, exists := docs[id]; exists {
		return ErrAlreadyExists
	}
	docs[id] = m
	return nil
}

func (c *memoryCollection) apply(doc bson.M, fields map[string]any) error {
	for k, v := range fields {
		val, err := toValue(v)
		if err != nil {
			return fmt.Errorf("failed to encode field %s: %w", k, err)
		}
		doc[k] = val
	}
	return nil
}

func (c *memoryCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	doc, ok := c.docs()[id]
	if !ok {
		return ErrNotFound
	}
	return c.apply(doc, fields)
}

func (c *memoryCollection) UpdateIfVersion(ctx context.Context, id string, version int64, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	doc, ok := c.docs()[id]
	if !ok {
		return ErrNotFound
	}
	current, _ := number(doc["version"])
	if int64(current) != version {
		return ErrVersionConflict
	}
	if err := c.apply(doc, fields); err != nil {
		return err
	}
	doc["version"] = version + 1
	return nil
}

func (c *memoryCollection) Delete(ctx context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.docs()
	if _, ok := docs[id]; !ok {
		return ErrNotFound
	}
	delete(docs, id)
	return nil
}

func (c *memoryCollection) match(q Query) ([]bson.M, error) {
	var out []bson.M
	for _, doc := range c.docs() {
		ok, err := matches(doc, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}

	// map iteration order is random; fall back to id order for stable results.
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range q.Orders {
			cmp, _ := compare(out[i][o.Field], out[j][o.Field])
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		idI, _ := out[i]["id"].(string)
		idJ, _ := out[j]["id"].(string)
		return idI < idJ
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (c *memoryCollection) Find(ctx context.Context, q Query, dst any) error {
	appender, err := newSliceAppender(dst)
	if err != nil {
		return err
	}

	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	docs, err := c.match(q)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		doc := doc
		if err := appender.next(func(target any) error { return fromDocument(doc, target) }); err != nil {
			return fmt.Errorf("failed to decode %s: %w", c.name, err)
		}
	}
	return nil
}

func (c *memoryCollection) Count(ctx context.Context, q Query) (int64, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	docs, err := c.match(q)
	if err != nil {
		return 0, err
	}
	return int64(len(docs)), nil
}

func matches(doc bson.M, filters []Filter) (bool, error) {
	for _, f := range filters {
		stored, ok := doc[f.Field]
		if !ok {
			return false, nil
		}

		if f.Op == OpIn {
			rv := reflect.ValueOf(f.Value)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return false, fmt.Errorf("database: %q filter on %s needs a slice", f.Op, f.Field)
			}
			found := false
			for i := 0; i < rv.Len(); i++ {
				want, err := toValue(rv.Index(i).Interface())
				if err != nil {
					return false, err
				}
				if cmp, ok := compare(stored, want); ok && cmp == 0 {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
			continue
		}

		want, err := toValue(f.Value)
		if err != nil {
			return false, err
		}
		cmp, ok := compare(stored, want)
		if !ok {
			return false, nil
		}
		var pass bool
		switch f.Op {
		case OpEq:
			pass = cmp == 0
		case OpGt:
			pass = cmp > 0
		case OpGte:
			pass = cmp >= 0
		case OpLt:
			pass = cmp < 0
		case OpLte:
			pass = cmp <= 0
		default:
			return false, fmt.Errorf("database: unsupported operator %q", f.Op)
		}
		if !pass {
			return false, nil
		}
	}
	return true, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func instant(v any) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	}
	return time.Time{}, false
}

// compare orders two stored values of the same kind. ok is false when they are not comparable.
func compare(a, b any) (int, bool) {
	if x, ok := number(a); ok {
		y, ok := number(b)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	if x, ok := instant(a); ok {
		y, ok := instant(b)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	case nil:
		if b == nil {
			return 0, true
		}
		return -1, true
	}
	return 0, false
}
