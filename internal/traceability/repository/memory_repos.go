package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// MemoryActorRepository stores actors in a MemoryStore.
type MemoryActorRepository struct {
	store *MemoryStore
}

// NewMemoryActorRepository creates a new in-memory actor repository
func NewMemoryActorRepository(store *MemoryStore) *MemoryActorRepository {
	return &MemoryActorRepository{store: store}
}

func (r *MemoryActorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	clone, err := cloneDoc(actor)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.actors.insert(actor.ID, clone) {
		return domain.Conflict("actor", actor.ID)
	}
	return nil
}

func (r *MemoryActorRepository) FindByID(ctx context.Context, id string) (*domain.Actor, error) {
	r.store.mu.RLock()
	stored, ok := r.store.actors.get(id)
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("actor", id)
	}
	return cloneDoc(stored)
}

func (r *MemoryActorRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Actor, error) {
	r.store.mu.RLock()
	stored := r.store.actors.list()
	r.store.mu.RUnlock()
	return page(stored, limit, offset)
}

func (r *MemoryActorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	clone, err := cloneDoc(actor)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.actors.replace(actor.ID, clone) {
		return domain.NotFound("actor", actor.ID)
	}
	return nil
}

func (r *MemoryActorRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.actors.remove(id) {
		return domain.NotFound("actor", id)
	}
	return nil
}

// MemoryItemRepository stores items in a MemoryStore.
type MemoryItemRepository struct {
	store *MemoryStore
}

// NewMemoryItemRepository creates a new in-memory item repository
func NewMemoryItemRepository(store *MemoryStore) *MemoryItemRepository {
	return &MemoryItemRepository{store: store}
}

func (r *MemoryItemRepository) Create(ctx context.Context, item *domain.Item) error {
	clone, err := cloneDoc(item)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.items.insert(ownedKey(item.ActorID, item.ID), clone) {
		return domain.Conflict("item", item.ID)
	}
	return nil
}

func (r *MemoryItemRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Item, error) {
	r.store.mu.RLock()
	stored, ok := r.store.items.get(ownedKey(actorID, id))
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("item", id)
	}
	return cloneDoc(stored)
}

func (r *MemoryItemRepository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]domain.Item, error) {
	r.store.mu.RLock()
	all := r.store.items.list()
	r.store.mu.RUnlock()
	owned := make([]*domain.Item, 0, len(all))
	for _, item := range all {
		if item.ActorID == actorID {
			owned = append(owned, item)
		}
	}
	return page(owned, limit, offset)
}

func (r *MemoryItemRepository) Update(ctx context.Context, item *domain.Item) error {
	clone, err := cloneDoc(item)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.items.replace(ownedKey(item.ActorID, item.ID), clone) {
		return domain.NotFound("item", item.ID)
	}
	return nil
}

func (r *MemoryItemRepository) Delete(ctx context.Context, actorID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.items.remove(ownedKey(actorID, id)) {
		return domain.NotFound("item", id)
	}
	return nil
}

func (r *MemoryItemRepository) DeleteByActor(ctx context.Context, actorID string) error {
	prefix := actorID + "/"
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.items.removeMatching(func(key string, _ *domain.Item) bool {
		return strings.HasPrefix(key, prefix)
	})
	return nil
}

// MemoryLocationRepository stores locations in a MemoryStore.
type MemoryLocationRepository struct {
	store *MemoryStore
}

// NewMemoryLocationRepository creates a new in-memory location repository
func NewMemoryLocationRepository(store *MemoryStore) *MemoryLocationRepository {
	return &MemoryLocationRepository{store: store}
}

func (r *MemoryLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	clone, err := cloneDoc(location)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.locations.insert(ownedKey(location.ActorID, location.ID), clone) {
		return domain.Conflict("location", location.ID)
	}
	return nil
}

func (r *MemoryLocationRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Location, error) {
	r.store.mu.RLock()
	stored, ok := r.store.locations.get(ownedKey(actorID, id))
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("location", id)
	}
	return cloneDoc(stored)
}

func (r *MemoryLocationRepository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]domain.Location, error) {
	r.store.mu.RLock()
	all := r.store.locations.list()
	r.store.mu.RUnlock()
	owned := make([]*domain.Location, 0, len(all))
	for _, location := range all {
		if location.ActorID == actorID {
			owned = append(owned, location)
		}
	}
	return page(owned, limit, offset)
}

func (r *MemoryLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	clone, err := cloneDoc(location)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.locations.replace(ownedKey(location.ActorID, location.ID), clone) {
		return domain.NotFound("location", location.ID)
	}
	return nil
}

func (r *MemoryLocationRepository) Delete(ctx context.Context, actorID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.locations.remove(ownedKey(actorID, id)) {
		return domain.NotFound("location", id)
	}
	return nil
}

func (r *MemoryLocationRepository) DeleteByActor(ctx context.Context, actorID string) error {
	prefix := actorID + "/"
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.locations.removeMatching(func(key string, _ *domain.Location) bool {
		return strings.HasPrefix(key, prefix)
	})
	return nil
}

// MemoryProcessRepository stores processes in a MemoryStore.
type MemoryProcessRepository struct {
	store *MemoryStore
}

// NewMemoryProcessRepository creates a new in-memory process repository
func NewMemoryProcessRepository(store *MemoryStore) *MemoryProcessRepository {
	return &MemoryProcessRepository{store: store}
}

func (r *MemoryProcessRepository) Create(ctx context.Context, process *domain.Process) error {
	clone, err := cloneDoc(process)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.processes.insert(ownedKey(process.ActorID, process.ID), clone) {
		return domain.Conflict("process", process.ID)
	}
	return nil
}

func (r *MemoryProcessRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Process, error) {
	r.store.mu.RLock()
	stored, ok := r.store.processes.get(ownedKey(actorID, id))
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("process", id)
	}
	return cloneDoc(stored)
}

func (r *MemoryProcessRepository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]domain.Process, error) {
	r.store.mu.RLock()
	all := r.store.processes.list()
	r.store.mu.RUnlock()
	owned := make([]*domain.Process, 0, len(all))
	for _, process := range all {
		if process.ActorID == actorID {
			owned = append(owned, process)
		}
	}
	return page(owned, limit, offset)
}

func (r *MemoryProcessRepository) Update(ctx context.Context, process *domain.Process) error {
	clone, err := cloneDoc(process)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.processes.replace(ownedKey(process.ActorID, process.ID), clone) {
		return domain.NotFound("process", process.ID)
	}
	return nil
}

func (r *MemoryProcessRepository) Delete(ctx context.Context, actorID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.processes.remove(ownedKey(actorID, id)) {
		return domain.NotFound("process", id)
	}
	return nil
}

func (r *MemoryProcessRepository) DeleteByActor(ctx context.Context, actorID string) error {
	prefix := actorID + "/"
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.processes.removeMatching(func(key string, _ *domain.Process) bool {
		return strings.HasPrefix(key, prefix)
	})
	return nil
}

// MemoryBatchRepository stores batches in a MemoryStore.
type MemoryBatchRepository struct {
	store *MemoryStore
}

// NewMemoryBatchRepository creates a new in-memory batch repository
func NewMemoryBatchRepository(store *MemoryStore) *MemoryBatchRepository {
	return &MemoryBatchRepository{store: store}
}

func (r *MemoryBatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	clone, err := cloneDoc(batch)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.batches.insert(ownedKey(batch.ActorID, batch.ID), clone) {
		return domain.Conflict("batch", batch.ID)
	}
	return nil
}

func (r *MemoryBatchRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Batch, error) {
	r.store.mu.RLock()
	stored, ok := r.store.batches.get(ownedKey(actorID, id))
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("batch", id)
	}
	return cloneDoc(stored)
}

func (r *MemoryBatchRepository) FindAll(ctx context.Context, actorID string, filter domain.BatchFilter) ([]domain.Batch, error) {
	r.store.mu.RLock()
	all := r.store.batches.list()
	r.store.mu.RUnlock()
	matched := make([]*domain.Batch, 0, len(all))
	for _, batch := range all {
		if batch.ActorID != actorID {
			continue
		}
		if filter.Status != "" && batch.Status != filter.Status {
			continue
		}
		if filter.ItemID != "" && batch.ItemID != filter.ItemID {
			continue
		}
		matched = append(matched, batch)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ProductionDate > matched[j].ProductionDate
	})
	return page(matched, filter.Limit, filter.Offset)
}

func (r *MemoryBatchRepository) Update(ctx context.Context, batch *domain.Batch) error {
	clone, err := cloneDoc(batch)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.batches.replace(ownedKey(batch.ActorID, batch.ID), clone) {
		return domain.NotFound("batch", batch.ID)
	}
	return nil
}

func (r *MemoryBatchRepository) Delete(ctx context.Context, actorID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.batches.remove(ownedKey(actorID, id)) {
		return domain.NotFound("batch", id)
	}
	return nil
}

func (r *MemoryBatchRepository) DeleteByActor(ctx context.Context, actorID string) error {
	prefix := actorID + "/"
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.batches.removeMatching(func(key string, _ *domain.Batch) bool {
		return strings.HasPrefix(key, prefix)
	})
	return nil
}

// MemoryEventRepository stores events in a MemoryStore, maintaining the
// same producing/consuming adjacency the SQL store keeps in event_edges.
type MemoryEventRepository struct {
	store *MemoryStore
}

// NewMemoryEventRepository creates a new in-memory event repository
func NewMemoryEventRepository(store *MemoryStore) *MemoryEventRepository {
	return &MemoryEventRepository{store: store}
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	clone, err := cloneDoc(event)
	if err != nil {
		return err
	}
	key := ownedKey(event.ActorID, event.ID)
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.events.insert(key, clone) {
		return domain.Conflict("event", event.ID)
	}
	for _, ref := range event.Inputs {
		if ref.BatchID != "" {
			edge := ownedKey(event.ActorID, ref.BatchID)
			r.store.consuming[edge] = append(r.store.consuming[edge], key)
		}
	}
	for _, ref := range event.Outputs {
		if ref.BatchID != "" {
			edge := ownedKey(event.ActorID, ref.BatchID)
			r.store.producing[edge] = append(r.store.producing[edge], key)
		}
	}
	return nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Event, error) {
	r.store.mu.RLock()
	stored, ok := r.store.events.get(ownedKey(actorID, id))
	r.store.mu.RUnlock()
	if !ok {
		return nil, domain.NotFound("event", id)
	}
	return cloneDoc(stored)
}

func (r *MemoryEventRepository) FindAll(ctx context.Context, actorID string, filter domain.EventFilter) ([]domain.Event, error) {
	r.store.mu.RLock()
	all := r.store.events.list()
	r.store.mu.RUnlock()
	matched := make([]*domain.Event, 0, len(all))
	for _, event := range all {
		if event.ActorID != actorID {
			continue
		}
		if filter.EventType != "" && event.EventType != filter.EventType {
			continue
		}
		matched = append(matched, event)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})
	return page(matched, filter.Limit, filter.Offset)
}

func (r *MemoryEventRepository) FindConsuming(ctx context.Context, actorID, batchID string) ([]domain.Event, error) {
	return r.findByEdge(actorID, batchID, domain.EdgeRoleInput)
}

func (r *MemoryEventRepository) FindProducing(ctx context.Context, actorID, batchID string) ([]domain.Event, error) {
	return r.findByEdge(actorID, batchID, domain.EdgeRoleOutput)
}

// findByEdge resolves edge keys to events, earliest first. An event that
// references the same batch twice is returned once.
func (r *MemoryEventRepository) findByEdge(actorID, batchID, role string) ([]domain.Event, error) {
	edge := ownedKey(actorID, batchID)
	r.store.mu.RLock()
	index := r.store.consuming
	if role == domain.EdgeRoleOutput {
		index = r.store.producing
	}
	keys := index[edge]
	matched := make([]*domain.Event, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if event, ok := r.store.events.get(key); ok {
			matched = append(matched, event)
		}
	}
	r.store.mu.RUnlock()
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp < matched[j].Timestamp
	})
	return page(matched, 0, 0)
}

func (r *MemoryEventRepository) Update(ctx context.Context, event *domain.Event) error {
	clone, err := cloneDoc(event)
	if err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.events.replace(ownedKey(event.ActorID, event.ID), clone) {
		return domain.NotFound("event", event.ID)
	}
	return nil
}

func (r *MemoryEventRepository) DeleteByActor(ctx context.Context, actorID string) error {
	prefix := actorID + "/"
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events.removeMatching(func(key string, _ *domain.Event) bool {
		return strings.HasPrefix(key, prefix)
	})
	for key := range r.store.producing {
		if strings.HasPrefix(key, prefix) {
			delete(r.store.producing, key)
		}
	}
	for key := range r.store.consuming {
		if strings.HasPrefix(key, prefix) {
			delete(r.store.consuming, key)
		}
	}
	return nil
}
