package query

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// seedChain stores a small lineage: a harvest producing lot-1, a
// processing run turning part of lot-1 into juice-1, and a shipment of
// the rest.
func seedChain(t *testing.T, env *queryEnv) {
	t.Helper()
	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(30, "kg")})
	env.seedBatch(t, domain.Batch{ID: "juice-1", ActorID: "farm-1", ItemID: "apple-juice", Quantity: amountOf(28, "L")})

	env.seedEvent(t, domain.Event{
		ID: "ev-harvest", ActorID: "farm-1", EventType: domain.EventTypeHarvest,
		Timestamp: "2026-03-01T08:00:00Z",
		Outputs:   []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(100, "kg")}},
	})
	env.seedEvent(t, domain.Event{
		ID: "ev-proc", ActorID: "farm-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-02T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(40, "kg")}},
		Outputs:   []domain.BatchRef{{BatchID: "juice-1", Amount: amountOf(28, "L")}},
	})
	env.seedEvent(t, domain.Event{
		ID: "ev-ship", ActorID: "farm-1", EventType: domain.EventTypeShipping,
		Timestamp: "2026-03-03T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(30, "kg")}},
	})
}

func TestTraceBatchUpstream(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	seedChain(t, env)
	handler := NewTraceBatchHandler(env.batches, env.events)

	trace, err := handler.Handle(ctx, TraceBatchQuery{
		ActorID: "farm-1", BatchID: "juice-1", Direction: DirectionUpstream,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(trace.Upstream) != 1 {
		t.Fatalf("expected 1 upstream link, got %d", len(trace.Upstream))
	}
	link := trace.Upstream[0]
	if link.BatchID != "lot-1" || link.ItemID != "apples" || link.EventID != "ev-proc" {
		t.Fatalf("unexpected link: %+v", link)
	}
	if link.Amount == nil || link.Amount.Amount.String() != "40" {
		t.Fatalf("expected consumed amount 40, got %+v", link.Amount)
	}
	if len(trace.Downstream) != 0 {
		t.Fatalf("upstream-only trace must not list downstream, got %d", len(trace.Downstream))
	}
	if len(trace.Events) != 1 || trace.Events[0].ID != "ev-proc" {
		t.Fatalf("expected the producing event, got %+v", trace.Events)
	}
}

func TestTraceBatchDownstream(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	seedChain(t, env)
	handler := NewTraceBatchHandler(env.batches, env.events)

	trace, err := handler.Handle(ctx, TraceBatchQuery{
		ActorID: "farm-1", BatchID: "lot-1", Direction: DirectionDownstream,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(trace.Downstream) != 1 || trace.Downstream[0].BatchID != "juice-1" {
		t.Fatalf("expected juice-1 downstream, got %+v", trace.Downstream)
	}
	// The shipment consumed lot-1 without producing anything; it must still
	// be listed as an event.
	if len(trace.Events) != 2 {
		t.Fatalf("expected 2 consuming events, got %d", len(trace.Events))
	}
}

func TestTraceBatchBothDirections(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	seedChain(t, env)
	handler := NewTraceBatchHandler(env.batches, env.events)

	trace, err := handler.Handle(ctx, TraceBatchQuery{ActorID: "farm-1", BatchID: "lot-1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	// Harvest events have no inputs, so upstream stays empty even though
	// the harvest itself is listed.
	if len(trace.Upstream) != 0 {
		t.Fatalf("expected no upstream links, got %+v", trace.Upstream)
	}
	if len(trace.Downstream) != 1 {
		t.Fatalf("expected 1 downstream link, got %d", len(trace.Downstream))
	}
	if len(trace.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(trace.Events))
	}
}

func TestTraceBatchSkipsDanglingRefs(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples"})
	env.seedEvent(t, domain.Event{
		ID: "ev-proc", ActorID: "farm-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-02T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(5, "kg")}},
		Outputs:   []domain.BatchRef{{BatchID: "never-created"}},
	})
	handler := NewTraceBatchHandler(env.batches, env.events)

	trace, err := handler.Handle(ctx, TraceBatchQuery{
		ActorID: "farm-1", BatchID: "lot-1", Direction: DirectionDownstream,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(trace.Downstream) != 0 {
		t.Fatalf("dangling refs must be skipped, got %+v", trace.Downstream)
	}
	if len(trace.Events) != 1 {
		t.Fatalf("the event itself must still be listed, got %d", len(trace.Events))
	}
}

func TestTraceBatchValidation(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewTraceBatchHandler(env.batches, env.events)

	if _, err := handler.Handle(ctx, TraceBatchQuery{ActorID: "farm-1"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without batch, got %v", err)
	}
	if _, err := handler.Handle(ctx, TraceBatchQuery{
		ActorID: "farm-1", BatchID: "lot-1", Direction: "sideways",
	}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad direction, got %v", err)
	}
}
