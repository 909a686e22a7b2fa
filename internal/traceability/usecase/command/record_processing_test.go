package command

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestRecordProcessingDeductsInputsAndCreatesOutputs(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordProcessingHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "mill-1", ItemID: "apples", Quantity: amountOf(10, "kg")})

	event, err := handler.Handle(ctx, RecordProcessingCommand{
		ActorID:   "mill-1",
		ProcessID: "pressing-v2",
		Inputs:    []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(4, "kg")}},
		Outputs:   []domain.BatchRef{{BatchID: "juice-1", ItemID: "apple-juice", Amount: amountOf(3, "L")}},
		Waste:     []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(1, "kg")}},
		Timestamp: "2026-04-05T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if event.EventType != domain.EventTypeProcessing {
		t.Fatalf("expected processing event, got %q", event.EventType)
	}
	if event.ProcessID != "pressing-v2" {
		t.Fatalf("expected process reference, got %q", event.ProcessID)
	}
	if len(event.Waste) != 1 || event.Waste[0].BatchID != "lot-1" {
		t.Fatalf("expected waste entry on event, got %+v", event.Waste)
	}

	input, err := env.batches.FindByID(ctx, "mill-1", "lot-1")
	if err != nil {
		t.Fatalf("find input: %v", err)
	}
	if input.Quantity.Amount.String() != "6" {
		t.Fatalf("expected 6 remaining, got %s", input.Quantity.Amount.String())
	}
	if input.Status != domain.BatchStatusActive {
		t.Fatalf("partially consumed batch must stay active, got %q", input.Status)
	}

	output, err := env.batches.FindByID(ctx, "mill-1", "juice-1")
	if err != nil {
		t.Fatalf("find output: %v", err)
	}
	if output.OriginKind != domain.OriginTransformed {
		t.Fatalf("expected transformed origin, got %q", output.OriginKind)
	}
	if output.ItemID != "apple-juice" {
		t.Fatalf("expected item from output ref, got %q", output.ItemID)
	}
	if output.ProductionDate != "2026-04-05" {
		t.Fatalf("expected production date from timestamp, got %q", output.ProductionDate)
	}
	if output.Quantity == nil || output.Quantity.Amount.String() != "3" {
		t.Fatalf("expected output quantity 3, got %+v", output.Quantity)
	}
}

func TestRecordProcessingDepletesFullyConsumedInput(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordProcessingHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "mill-1", ItemID: "apples", Quantity: amountOf(10, "kg")})

	_, err := handler.Handle(ctx, RecordProcessingCommand{
		ActorID: "mill-1",
		Inputs:  []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(10, "kg")}},
		Outputs: []domain.BatchRef{{BatchID: "juice-1", Amount: amountOf(8, "L")}},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	input, err := env.batches.FindByID(ctx, "mill-1", "lot-1")
	if err != nil {
		t.Fatalf("find input: %v", err)
	}
	if input.Status != domain.BatchStatusDepleted {
		t.Fatalf("expected depleted, got %q", input.Status)
	}
	if !input.Quantity.Amount.IsZero() {
		t.Fatalf("expected zero remaining, got %s", input.Quantity.Amount.String())
	}
}

func TestRecordProcessingDefaultsUnknownItem(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordProcessingHandler(env.batches, env.events, env.tx)

	_, err := handler.Handle(ctx, RecordProcessingCommand{
		ActorID: "mill-1",
		Outputs: []domain.BatchRef{{BatchID: "mystery-1"}},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	output, err := env.batches.FindByID(ctx, "mill-1", "mystery-1")
	if err != nil {
		t.Fatalf("find output: %v", err)
	}
	if output.ItemID != "unknown" {
		t.Fatalf("expected unknown item placeholder, got %q", output.ItemID)
	}
}

func TestRecordProcessingLeavesExistingOutputAlone(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordProcessingHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "juice-1", ActorID: "mill-1", ItemID: "apple-juice", Quantity: amountOf(50, "L")})

	_, err := handler.Handle(ctx, RecordProcessingCommand{
		ActorID: "mill-1",
		Outputs: []domain.BatchRef{{BatchID: "juice-1", Amount: amountOf(3, "L")}},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	output, err := env.batches.FindByID(ctx, "mill-1", "juice-1")
	if err != nil {
		t.Fatalf("find output: %v", err)
	}
	if output.Quantity.Amount.String() != "50" {
		t.Fatalf("existing output batch must not be rewritten, got %s", output.Quantity.Amount.String())
	}
}

func TestRecordProcessingRejectsUnusableInput(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordProcessingHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{
		ID: "lot-1", ActorID: "mill-1", ItemID: "apples",
		Status: domain.BatchStatusDisposed, Quantity: amountOf(10, "kg"),
	})

	_, err := handler.Handle(ctx, RecordProcessingCommand{
		ActorID: "mill-1",
		Inputs:  []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(4, "kg")}},
		Outputs: []domain.BatchRef{{BatchID: "juice-1", Amount: amountOf(3, "L")}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Nothing may have been written.
	if _, err := env.batches.FindByID(ctx, "mill-1", "juice-1"); !domain.IsNotFound(err) {
		t.Fatalf("expected no output batch, got %v", err)
	}
	events, err := env.events.FindAll(ctx, "mill-1", domain.EventFilter{})
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestRecordProcessingRejectsOverConsumption(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordProcessingHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "mill-1", ItemID: "apples", Quantity: amountOf(10, "kg")})

	_, err := handler.Handle(ctx, RecordProcessingCommand{
		ActorID: "mill-1",
		Inputs:  []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(11, "kg")}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	input, err := env.batches.FindByID(ctx, "mill-1", "lot-1")
	if err != nil {
		t.Fatalf("find input: %v", err)
	}
	if input.Quantity.Amount.String() != "10" {
		t.Fatalf("rejected run must not deduct, got %s", input.Quantity.Amount.String())
	}
}
