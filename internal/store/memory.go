package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is a simple in-memory store useful for tests.
// It is not intended for production use.
type Memory struct {
	mu   sync.Mutex
	docs map[string][]Document

	// FailInserts makes every Insert return an error; used to exercise
	// best-effort side-effect handling.
	FailInserts error
}

func NewMemory() *Memory {
	return &Memory{docs: map[string][]Document{}}
}

func (m *Memory) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	if collection == "" {
		return "", ErrCollectionRequired
	}
	if doc == nil {
		return "", ErrDocumentRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailInserts != nil {
		return "", m.FailInserts
	}

	copied := Document{}
	for k, v := range doc {
		copied[k] = v
	}
	copied[FieldID] = uuid.NewString()
	m.docs[collection] = append(m.docs[collection], copied)
	return copied[FieldID].(string), nil
}

func (m *Memory) Find(ctx context.Context, collection string, filter Document, limit int) ([]Document, error) {
	if collection == "" {
		return nil, ErrCollectionRequired
	}
	if limit <= 0 {
		limit = 100
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Document, 0)
	for _, d := range m.docs[collection] {
		if !matches(d, filter) {
			continue
		}
		out = append(out, d)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Count reports how many documents a collection holds; test helper.
func (m *Memory) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs[collection])
}

func matches(doc, filter Document) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}
