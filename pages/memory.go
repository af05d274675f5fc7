package pages

import (
	"context"
	"sync"
)

// MemoryStore keeps the site document in process memory. Useful for tests
// and previews; it clones on every boundary so callers never share state
// with the store.
type MemoryStore struct {
	mu       sync.Mutex
	doc      *SiteData
	failLoad error
	failSave error
	saves    int
}

// NewMemoryStore constructs a store, optionally seeded with a document.
func NewMemoryStore(seed *SiteData) *MemoryStore {
	return &MemoryStore{doc: seed.Clone()}
}

// FailLoad makes subsequent loads return err. Pass nil to heal.
func (m *MemoryStore) FailLoad(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = err
}

// FailSave makes subsequent saves return err. Pass nil to heal.
func (m *MemoryStore) FailSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave = err
}

// Saves reports how many saves have succeeded.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Snapshot returns a deep copy of the stored document.
func (m *MemoryStore) Snapshot() *SiteData {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return &SiteData{}
	}
	return m.doc.Clone()
}

func (m *MemoryStore) Load(ctx context.Context) (*SiteData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad != nil {
		return nil, m.failLoad
	}
	if m.doc == nil {
		return &SiteData{}, nil
	}
	return m.doc.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, data *SiteData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.doc = data.Clone()
	m.saves++
	return nil
}
