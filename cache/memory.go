package cache

import (
	"context"
	"sync"

	shapegen "github.com/shapegen/shapegen"
)

// Memory is an in-process Cache. First write wins; later stores of the same
// fingerprint are no-ops, which is safe because documents are deterministic
// functions of their fingerprint.
type Memory struct {
	mu   sync.RWMutex
	docs map[shapegen.Fingerprint]*shapegen.Document
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{docs: map[shapegen.Fingerprint]*shapegen.Document{}}
}

func (m *Memory) Lookup(ctx context.Context, fp shapegen.Fingerprint) (*shapegen.Document, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[fp]
	return doc, ok, nil
}

func (m *Memory) Store(ctx context.Context, fp shapegen.Fingerprint, doc *shapegen.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.docs[fp]; exists {
		return nil
	}
	m.docs[fp] = doc
	return nil
}

// Len reports the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
