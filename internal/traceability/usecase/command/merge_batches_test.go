package command

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestMergeBatchesCombinesSources(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewMergeBatchesHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(12, "kg")})
	env.seedBatch(t, domain.Batch{ID: "lot-2", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(8, "kg")})

	// A kilo lost to handling is an ordinary merge.
	event, err := handler.Handle(ctx, MergeBatchesCommand{
		ActorID:        "farm-1",
		SourceBatchIDs: []string{"lot-1", "lot-2"},
		OutputBatchID:  "lot-merged",
		OutputQuantity: domain.NewQuantity(19, "kg"),
		Timestamp:      "2026-04-02T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if event.EventType != domain.EventTypeMerge {
		t.Fatalf("expected merge event, got %q", event.EventType)
	}
	if len(event.Inputs) != 2 {
		t.Fatalf("expected 2 input refs, got %d", len(event.Inputs))
	}
	if event.Inputs[0].Amount == nil || event.Inputs[0].Amount.Amount.String() != "12" {
		t.Fatalf("expected input snapshot of 12, got %+v", event.Inputs[0].Amount)
	}

	merged, err := env.batches.FindByID(ctx, "farm-1", "lot-merged")
	if err != nil {
		t.Fatalf("find merged: %v", err)
	}
	if merged.OriginKind != domain.OriginMerged {
		t.Fatalf("expected merged origin, got %q", merged.OriginKind)
	}
	if merged.ItemID != "apples" {
		t.Fatalf("expected inherited item, got %q", merged.ItemID)
	}
	if merged.ProductionDate != "2026-04-02" {
		t.Fatalf("expected production date from timestamp, got %q", merged.ProductionDate)
	}
	if merged.Quantity == nil || merged.Quantity.Amount.String() != "19" {
		t.Fatalf("expected merged quantity 19, got %+v", merged.Quantity)
	}

	for _, id := range []string{"lot-1", "lot-2"} {
		source, err := env.batches.FindByID(ctx, "farm-1", id)
		if err != nil {
			t.Fatalf("find %s: %v", id, err)
		}
		if source.Status != domain.BatchStatusDepleted {
			t.Fatalf("expected %s depleted, got %q", id, source.Status)
		}
	}
}

func TestMergeBatchesToleranceBoundary(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewMergeBatchesHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(12, "kg")})
	env.seedBatch(t, domain.Batch{ID: "lot-2", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(8, "kg")})

	// 21 against 20 sits exactly on the boundary and passes.
	if _, err := handler.Handle(ctx, MergeBatchesCommand{
		ActorID:        "farm-1",
		SourceBatchIDs: []string{"lot-1", "lot-2"},
		OutputBatchID:  "lot-merged",
		OutputQuantity: domain.NewQuantity(21, "kg"),
	}); err != nil {
		t.Fatalf("expected boundary output to pass, got %v", err)
	}
}

func TestMergeBatchesRejectsExcessOutput(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewMergeBatchesHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(12, "kg")})
	env.seedBatch(t, domain.Batch{ID: "lot-2", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(8, "kg")})

	_, err := handler.Handle(ctx, MergeBatchesCommand{
		ActorID:        "farm-1",
		SourceBatchIDs: []string{"lot-1", "lot-2"},
		OutputBatchID:  "lot-merged",
		OutputQuantity: domain.NewQuantity(21.5, "kg"),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := env.batches.FindByID(ctx, "farm-1", "lot-merged"); !domain.IsNotFound(err) {
		t.Fatalf("expected no output batch after rejected merge, got %v", err)
	}
	source, err := env.batches.FindByID(ctx, "farm-1", "lot-1")
	if err != nil {
		t.Fatalf("find source: %v", err)
	}
	if source.Status != domain.BatchStatusActive {
		t.Fatalf("source must stay active after rejected merge, got %q", source.Status)
	}
}

func TestMergeBatchesRejectsMixedItems(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewMergeBatchesHandler(env.batches, env.events, env.tx)

	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(12, "kg")})
	env.seedBatch(t, domain.Batch{ID: "lot-2", ActorID: "farm-1", ItemID: "pears", Quantity: amountOf(8, "kg")})

	_, err := handler.Handle(ctx, MergeBatchesCommand{
		ActorID:        "farm-1",
		SourceBatchIDs: []string{"lot-1", "lot-2"},
		OutputBatchID:  "lot-merged",
		OutputQuantity: domain.NewQuantity(20, "kg"),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "cannot merge batches of different items" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
