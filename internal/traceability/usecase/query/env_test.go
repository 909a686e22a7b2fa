package query

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/repository"
)

// queryEnv bundles in-memory repositories seeded directly, so the read
// models are exercised against known stored state.
type queryEnv struct {
	batches   domain.BatchRepository
	events    domain.EventRepository
	locations domain.LocationRepository
}

func newQueryEnv() *queryEnv {
	store := repository.NewMemoryStore()
	return &queryEnv{
		batches:   repository.NewMemoryBatchRepository(store),
		events:    repository.NewMemoryEventRepository(store),
		locations: repository.NewMemoryLocationRepository(store),
	}
}

func (e *queryEnv) seedBatch(t *testing.T, batch domain.Batch) {
	t.Helper()
	if batch.Status == "" {
		batch.Status = domain.BatchStatusActive
	}
	if err := e.batches.Create(context.Background(), &batch); err != nil {
		t.Fatalf("seed batch %s: %v", batch.ID, err)
	}
}

func (e *queryEnv) seedEvent(t *testing.T, event domain.Event) {
	t.Helper()
	if err := e.events.Create(context.Background(), &event); err != nil {
		t.Fatalf("seed event %s: %v", event.ID, err)
	}
}

func amountOf(amount float64, unit string) *domain.Quantity {
	q := domain.NewQuantity(amount, unit)
	return &q
}
