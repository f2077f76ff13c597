package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store used by tests and as the degraded fallback
// when the database is unreachable at startup. Documents go through a bson
// round trip on every read and write so field tags behave exactly as they
// do against MongoDB.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]bson.M
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]bson.M)}
}

func toDoc(doc any) (bson.M, error) {
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

func fromDoc(m bson.M, out any) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func (s *Memory) Get(ctx context.Context, collection, id string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return false, nil
	}
	if err := fromDoc(doc, out); err != nil {
		return false, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return true, nil
}

func (s *Memory) Set(ctx context.Context, collection, id string, doc any, merge bool) error {
	m, err := toDoc(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] == nil {
		s.data[collection] = make(map[string]bson.M)
	}
	if merge {
		existing, ok := s.data[collection][id]
		if !ok {
			existing = bson.M{}
		}
		for k, v := range m {
			existing[k] = v
		}
		s.data[collection][id] = existing
		return nil
	}
	s.data[collection][id] = m
	return nil
}

func (s *Memory) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m, err := toDoc(doc)
	if err != nil {
		return "", err
	}
	id := primitive.NewObjectID()
	m["_id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] == nil {
		s.data[collection] = make(map[string]bson.M)
	}
	s.data[collection][id.Hex()] = m
	return id.Hex(), nil
}

func (s *Memory) Query(ctx context.Context, collection string, filter map[string]any, out any, opts QueryOpts) error {
	s.mu.RLock()
	var matched []bson.M
	for _, doc := range s.data[collection] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	if opts.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			less := lessValue(matched[i][opts.SortBy], matched[j][opts.SortBy])
			if opts.Desc {
				return !less
			}
			return less
		})
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	// Decode into the caller's slice one element at a time.
	slice := reflect.ValueOf(out).Elem()
	elemType := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(matched))
	for _, doc := range matched {
		elem := reflect.New(elemType)
		if err := fromDoc(doc, elem.Interface()); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", collection, err)
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}

func matches(doc bson.M, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}

func lessValue(a, b any) bool {
	switch av := a.(type) {
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			return av < bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case int32:
		if bv, ok := b.(int32); ok {
			return av < bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	return false
}
