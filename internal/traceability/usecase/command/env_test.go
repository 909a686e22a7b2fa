package command

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/repository"
)

// commandEnv bundles in-memory repositories for exercising command
// handlers against the same store.
type commandEnv struct {
	actors    domain.ActorRepository
	items     domain.ItemRepository
	locations domain.LocationRepository
	processes domain.ProcessRepository
	batches   domain.BatchRepository
	events    domain.EventRepository
	tx        domain.TxManager
}

func newCommandEnv() *commandEnv {
	store := repository.NewMemoryStore()
	return &commandEnv{
		actors:    repository.NewMemoryActorRepository(store),
		items:     repository.NewMemoryItemRepository(store),
		locations: repository.NewMemoryLocationRepository(store),
		processes: repository.NewMemoryProcessRepository(store),
		batches:   repository.NewMemoryBatchRepository(store),
		events:    repository.NewMemoryEventRepository(store),
		tx:        repository.NewMemoryTxManager(store),
	}
}

func (e *commandEnv) seedBatch(t *testing.T, batch domain.Batch) {
	t.Helper()
	if batch.Status == "" {
		batch.Status = domain.BatchStatusActive
	}
	if err := e.batches.Create(context.Background(), &batch); err != nil {
		t.Fatalf("seed batch %s: %v", batch.ID, err)
	}
}

func amountOf(amount float64, unit string) *domain.Quantity {
	q := domain.NewQuantity(amount, unit)
	return &q
}
