package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// MemoryStore keeps every collection in process. It backs tests and
// local development with the same contract as the PostgreSQL store.
// Documents are cloned on the way in and out, so callers never share
// memory with the store, and stored values are never mutated in place.
type MemoryStore struct {
	mu        sync.RWMutex
	actors    *collection[domain.Actor]
	items     *collection[domain.Item]
	locations *collection[domain.Location]
	processes *collection[domain.Process]
	batches   *collection[domain.Batch]
	events    *collection[domain.Event]
	producing map[string][]string // actor/batch -> event keys
	consuming map[string][]string
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		actors:    newCollection[domain.Actor](),
		items:     newCollection[domain.Item](),
		locations: newCollection[domain.Location](),
		processes: newCollection[domain.Process](),
		batches:   newCollection[domain.Batch](),
		events:    newCollection[domain.Event](),
		producing: make(map[string][]string),
		consuming: make(map[string][]string),
	}
}

type memorySnapshot struct {
	actors    *collection[domain.Actor]
	items     *collection[domain.Item]
	locations *collection[domain.Location]
	processes *collection[domain.Process]
	batches   *collection[domain.Batch]
	events    *collection[domain.Event]
	producing map[string][]string
	consuming map[string][]string
}

func (s *MemoryStore) snapshot() *memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &memorySnapshot{
		actors:    s.actors.snapshot(),
		items:     s.items.snapshot(),
		locations: s.locations.snapshot(),
		processes: s.processes.snapshot(),
		batches:   s.batches.snapshot(),
		events:    s.events.snapshot(),
		producing: copyIndex(s.producing),
		consuming: copyIndex(s.consuming),
	}
}

func (s *MemoryStore) restore(snap *memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors = snap.actors
	s.items = snap.items
	s.locations = snap.locations
	s.processes = snap.processes
	s.batches = snap.batches
	s.events = snap.events
	s.producing = snap.producing
	s.consuming = snap.consuming
}

func copyIndex(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}

// MemoryTxManager gives memory-backed commands the same all-or-nothing
// behavior as a database transaction: on error the store rolls back to
// the snapshot taken at entry. Writers racing the rollback window are
// not serialized.
type MemoryTxManager struct {
	store *MemoryStore
}

// NewMemoryTxManager creates a new memory transaction manager
func NewMemoryTxManager(store *MemoryStore) *MemoryTxManager {
	return &MemoryTxManager{store: store}
}

// Do executes fn, restoring the pre-call state when it errors.
func (m *MemoryTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// collection is an insertion-ordered map of documents.
type collection[T any] struct {
	byKey map[string]*T
	keys  []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byKey: make(map[string]*T)}
}

func (c *collection[T]) insert(key string, v *T) bool {
	if _, ok := c.byKey[key]; ok {
		return false
	}
	c.byKey[key] = v
	c.keys = append(c.keys, key)
	return true
}

func (c *collection[T]) get(key string) (*T, bool) {
	v, ok := c.byKey[key]
	return v, ok
}

func (c *collection[T]) replace(key string, v *T) bool {
	if _, ok := c.byKey[key]; !ok {
		return false
	}
	c.byKey[key] = v
	return true
}

func (c *collection[T]) remove(key string) bool {
	if _, ok := c.byKey[key]; !ok {
		return false
	}
	delete(c.byKey, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) removeMatching(match func(key string, v *T) bool) {
	kept := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		if match(k, c.byKey[k]) {
			delete(c.byKey, k)
		} else {
			kept = append(kept, k)
		}
	}
	c.keys = kept
}

// list returns the stored values in insertion order.
func (c *collection[T]) list() []*T {
	out := make([]*T, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.byKey[k])
	}
	return out
}

// snapshot copies the index, not the values; stored values are treated
// as immutable.
func (c *collection[T]) snapshot() *collection[T] {
	cp := &collection[T]{
		byKey: make(map[string]*T, len(c.byKey)),
		keys:  append([]string(nil), c.keys...),
	}
	for k, v := range c.byKey {
		cp.byKey[k] = v
	}
	return cp
}

// ownedKey namespaces an entity id by its owning actor.
func ownedKey(actorID, id string) string {
	return actorID + "/" + id
}

// cloneDoc round-trips a document through its canonical JSON form.
func cloneDoc[T any](src *T) (*T, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	dst := new(T)
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// page clones a window of the listed documents.
func page[T any](stored []*T, limit, offset int) ([]T, error) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(stored) {
		offset = len(stored)
	}
	stored = stored[offset:]
	if limit > 0 && limit < len(stored) {
		stored = stored[:limit]
	}
	out := make([]T, 0, len(stored))
	for _, s := range stored {
		clone, err := cloneDoc(s)
		if err != nil {
			return nil, err
		}
		out = append(out, *clone)
	}
	return out, nil
}
