package command

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestDisposeBatchMarksDisposedAndRecordsReason(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewDisposeBatchHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(7, "kg")})

	event, err := handler.Handle(ctx, DisposeBatchCommand{
		ActorID: "farm-1",
		BatchID: "lot-1",
		Reason:  "mold contamination",
		Notes:   "found during weekly inspection",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if event.EventType != domain.EventTypeDisposal {
		t.Fatalf("expected disposal event, got %q", event.EventType)
	}
	if event.Notes != "Reason: mold contamination. found during weekly inspection" {
		t.Fatalf("unexpected notes: %q", event.Notes)
	}
	if len(event.Inputs) != 1 || event.Inputs[0].Amount == nil || event.Inputs[0].Amount.Amount.String() != "7" {
		t.Fatalf("expected input snapshot of 7, got %+v", event.Inputs)
	}

	batch, err := env.batches.FindByID(ctx, "farm-1", "lot-1")
	if err != nil {
		t.Fatalf("find batch: %v", err)
	}
	if batch.Status != domain.BatchStatusDisposed {
		t.Fatalf("expected disposed, got %q", batch.Status)
	}
}

func TestDisposeBatchValidation(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewDisposeBatchHandler(env.batches, env.events, env.tx)

	if _, err := handler.Handle(ctx, DisposeBatchCommand{ActorID: "farm-1", BatchID: "lot-1"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without reason, got %v", err)
	}
	if _, err := handler.Handle(ctx, DisposeBatchCommand{ActorID: "farm-1", BatchID: "ghost", Reason: "spoiled"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for unknown batch, got %v", err)
	}
}
