package query

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestTraceGraphWalksUpstream(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewTraceGraphHandler(env.batches, env.events)

	env.seedBatch(t, domain.Batch{ID: "raw-1", ActorID: "mill-1", ItemID: "apples", ProductionDate: "2026-03-01"})
	env.seedBatch(t, domain.Batch{ID: "raw-2", ActorID: "mill-1", ItemID: "apples", ProductionDate: "2026-03-01"})
	env.seedBatch(t, domain.Batch{ID: "mid-1", ActorID: "mill-1", ItemID: "apples"})
	env.seedBatch(t, domain.Batch{ID: "top-1", ActorID: "mill-1", ItemID: "apple-juice"})

	env.seedEvent(t, domain.Event{
		ID: "ev-merge", ActorID: "mill-1", EventType: domain.EventTypeMerge,
		Timestamp: "2026-03-02T08:00:00Z",
		Inputs: []domain.BatchRef{
			{BatchID: "raw-1", Amount: amountOf(10, "kg")},
			{BatchID: "raw-2", Amount: amountOf(10, "kg")},
		},
		Outputs: []domain.BatchRef{{BatchID: "mid-1", Amount: amountOf(20, "kg")}},
	})
	env.seedEvent(t, domain.Event{
		ID: "ev-press", ActorID: "mill-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-03T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "mid-1", Amount: amountOf(20, "kg")}},
		Outputs:   []domain.BatchRef{{BatchID: "top-1", Amount: amountOf(15, "L")}},
	})

	root, err := handler.Handle(ctx, TraceGraphQuery{ActorID: "mill-1", BatchID: "top-1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if root.BatchID != "top-1" || root.Depth != 0 {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Inputs) != 1 {
		t.Fatalf("expected 1 edge into root, got %d", len(root.Inputs))
	}
	edge := root.Inputs[0]
	if edge.EventID != "ev-press" || edge.EventType != domain.EventTypeProcessing {
		t.Fatalf("unexpected edge: %+v", edge)
	}
	mid := edge.Batch
	if mid.BatchID != "mid-1" || mid.Depth != 1 {
		t.Fatalf("unexpected mid node: %+v", mid)
	}
	if len(mid.Inputs) != 2 {
		t.Fatalf("expected 2 edges into mid, got %d", len(mid.Inputs))
	}
	for _, e := range mid.Inputs {
		if e.Batch.Depth != 2 {
			t.Fatalf("expected raw nodes at depth 2, got %d", e.Batch.Depth)
		}
		if e.Batch.Inputs != nil {
			t.Fatalf("raw material must have no further inputs, got %+v", e.Batch.Inputs)
		}
	}
}

func TestTraceGraphCollapsesCycles(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewTraceGraphHandler(env.batches, env.events)

	env.seedBatch(t, domain.Batch{ID: "a", ActorID: "mill-1", ItemID: "x"})
	env.seedBatch(t, domain.Batch{ID: "b", ActorID: "mill-1", ItemID: "x"})
	env.seedEvent(t, domain.Event{
		ID: "ev-1", ActorID: "mill-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-01T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "a"}},
		Outputs:   []domain.BatchRef{{BatchID: "b"}},
	})
	env.seedEvent(t, domain.Event{
		ID: "ev-2", ActorID: "mill-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-02T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "b"}},
		Outputs:   []domain.BatchRef{{BatchID: "a"}},
	})

	root, err := handler.Handle(ctx, TraceGraphQuery{ActorID: "mill-1", BatchID: "a"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(root.Inputs) != 1 {
		t.Fatalf("expected edge to b, got %+v", root.Inputs)
	}
	b := root.Inputs[0].Batch
	if len(b.Inputs) != 1 {
		t.Fatalf("expected edge back to a, got %+v", b.Inputs)
	}
	leaf := b.Inputs[0].Batch
	if !leaf.Visited {
		t.Fatalf("expected revisited batch to collapse into a leaf, got %+v", leaf)
	}
}

func TestTraceGraphDepthLimit(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewTraceGraphHandler(env.batches, env.events)

	env.seedBatch(t, domain.Batch{ID: "g0", ActorID: "mill-1", ItemID: "x"})
	env.seedBatch(t, domain.Batch{ID: "g1", ActorID: "mill-1", ItemID: "x"})
	env.seedBatch(t, domain.Batch{ID: "g2", ActorID: "mill-1", ItemID: "x"})
	env.seedEvent(t, domain.Event{
		ID: "ev-1", ActorID: "mill-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-01T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "g1"}},
		Outputs:   []domain.BatchRef{{BatchID: "g0"}},
	})
	env.seedEvent(t, domain.Event{
		ID: "ev-2", ActorID: "mill-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-02T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "g2"}},
		Outputs:   []domain.BatchRef{{BatchID: "g1"}},
	})

	root, err := handler.Handle(ctx, TraceGraphQuery{ActorID: "mill-1", BatchID: "g0", MaxDepth: 1})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	g1 := root.Inputs[0].Batch
	if g1.BatchID != "g1" || g1.Visited {
		t.Fatalf("depth 1 must still resolve, got %+v", g1)
	}
	g2 := g1.Inputs[0].Batch
	if !g2.Visited {
		t.Fatalf("expected depth cutoff leaf, got %+v", g2)
	}
	if g2.ItemID != "" {
		t.Fatalf("cutoff leaf must not be resolved, got %+v", g2)
	}
}

func TestTraceGraphUnknownInputBecomesErrorLeaf(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewTraceGraphHandler(env.batches, env.events)

	env.seedBatch(t, domain.Batch{ID: "top-1", ActorID: "mill-1", ItemID: "x"})
	env.seedEvent(t, domain.Event{
		ID: "ev-1", ActorID: "mill-1", EventType: domain.EventTypeProcessing,
		Timestamp: "2026-03-01T08:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "vanished"}},
		Outputs:   []domain.BatchRef{{BatchID: "top-1"}},
	})

	root, err := handler.Handle(ctx, TraceGraphQuery{ActorID: "mill-1", BatchID: "top-1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	leaf := root.Inputs[0].Batch
	if leaf.Error != "not found" {
		t.Fatalf("expected error leaf, got %+v", leaf)
	}
}

func TestTraceGraphDepthCap(t *testing.T) {
	ctx := context.Background()
	env := newQueryEnv()
	handler := NewTraceGraphHandler(env.batches, env.events)

	env.seedBatch(t, domain.Batch{ID: "solo", ActorID: "mill-1", ItemID: "x"})

	// An oversized request is clamped rather than rejected.
	root, err := handler.Handle(ctx, TraceGraphQuery{ActorID: "mill-1", BatchID: "solo", MaxDepth: 500})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if root.BatchID != "solo" || len(root.Inputs) != 0 {
		t.Fatalf("unexpected root: %+v", root)
	}
}
