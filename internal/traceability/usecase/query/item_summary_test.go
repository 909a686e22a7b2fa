package query

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestItemSummaryCountsLineage(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	trace := NewTraceBatchHandler(env.batches, env.events)
	handler := NewItemSummaryHandler(env.batches, trace)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", ProductionDate: "2026-03-01", Quantity: amountOf(100, "kg")})
	env.seedBatch(t, domain.Batch{ID: "lot-1a", ActorID: "farm-1", ItemID: "apples", ProductionDate: "2026-03-05", Quantity: amountOf(60, "kg")})
	env.seedBatch(t, domain.Batch{ID: "other-1", ActorID: "farm-1", ItemID: "pears"})

	env.seedEvent(t, domain.Event{
		ID: "ev-harvest", ActorID: "farm-1", EventType: domain.EventTypeHarvest,
		Timestamp: "2026-03-01T08:00:00Z",
		Outputs:   []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(100, "kg")}},
	})
	env.seedEvent(t, domain.Event{
		ID: "ev-split", ActorID: "farm-1", EventType: domain.EventTypeSplit,
		Timestamp: "2026-03-05T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(100, "kg")}},
		Outputs:   []domain.BatchRef{{BatchID: "lot-1a", Amount: amountOf(60, "kg")}},
	})

	summary, err := handler.Handle(ctx, ItemSummaryQuery{ActorID: "farm-1", ItemID: "apples"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if summary.ItemID != "apples" || summary.TotalBatches != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	byID := make(map[string]ItemBatchSummary)
	for _, b := range summary.Batches {
		byID[b.BatchID] = b
	}
	harvested, ok := byID["lot-1"]
	if !ok {
		t.Fatalf("lot-1 missing from summary: %+v", summary.Batches)
	}
	// Harvested material has a producing event but no upstream batches.
	if harvested.InputCount != 0 || harvested.EventCount != 1 {
		t.Fatalf("unexpected lot-1 counts: %+v", harvested)
	}
	child, ok := byID["lot-1a"]
	if !ok {
		t.Fatalf("lot-1a missing from summary: %+v", summary.Batches)
	}
	if child.InputCount != 1 || child.EventCount != 1 {
		t.Fatalf("unexpected lot-1a counts: %+v", child)
	}
}

func TestItemSummaryEmptyItem(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewItemSummaryHandler(env.batches, NewTraceBatchHandler(env.batches, env.events))

	summary, err := handler.Handle(ctx, ItemSummaryQuery{ActorID: "farm-1", ItemID: "nothing-here"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if summary.TotalBatches != 0 || len(summary.Batches) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}

	if _, err := handler.Handle(ctx, ItemSummaryQuery{ActorID: "farm-1"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
