package command

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestDeleteActorCascades(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewDeleteActorHandler(env.actors, env.items, env.batches, env.processes, env.events, env.locations, env.tx)

	if err := env.actors.Create(ctx, &domain.Actor{ID: "farm-1", Name: "Green Farm", Kind: "producer"}); err != nil {
		t.Fatalf("seed actor: %v", err)
	}
	if err := env.items.Create(ctx, &domain.Item{ID: "apples", ActorID: "farm-1", Name: "Apples"}); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	if err := env.locations.Create(ctx, &domain.Location{ID: "field-7", ActorID: "farm-1", Name: "North Field"}); err != nil {
		t.Fatalf("seed location: %v", err)
	}
	if err := env.processes.Create(ctx, &domain.Process{ID: "sorting-v1", ActorID: "farm-1", Name: "Sorting"}); err != nil {
		t.Fatalf("seed process: %v", err)
	}
	env.seedBatch(t, domain.Batch{ID: "lot-1", ActorID: "farm-1", ItemID: "apples", Quantity: amountOf(10, "kg")})
	if err := env.events.Create(ctx, &domain.Event{
		ID: "ev-1", ActorID: "farm-1", EventType: domain.EventTypeHarvest,
		Timestamp: "2026-03-01T08:00:00Z",
		Outputs:   []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(10, "kg")}},
	}); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	// Another actor's records stay untouched.
	if err := env.actors.Create(ctx, &domain.Actor{ID: "farm-2", Name: "Hill Farm", Kind: "producer"}); err != nil {
		t.Fatalf("seed other actor: %v", err)
	}
	env.seedBatch(t, domain.Batch{ID: "lot-9", ActorID: "farm-2", ItemID: "pears"})

	if err := handler.Handle(ctx, DeleteActorCommand{ID: "farm-1"}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if _, err := env.actors.FindByID(ctx, "farm-1"); !domain.IsNotFound(err) {
		t.Fatalf("expected actor gone, got %v", err)
	}
	if _, err := env.items.FindByID(ctx, "farm-1", "apples"); !domain.IsNotFound(err) {
		t.Fatalf("expected item gone, got %v", err)
	}
	if _, err := env.locations.FindByID(ctx, "farm-1", "field-7"); !domain.IsNotFound(err) {
		t.Fatalf("expected location gone, got %v", err)
	}
	if _, err := env.processes.FindByID(ctx, "farm-1", "sorting-v1"); !domain.IsNotFound(err) {
		t.Fatalf("expected process gone, got %v", err)
	}
	if _, err := env.batches.FindByID(ctx, "farm-1", "lot-1"); !domain.IsNotFound(err) {
		t.Fatalf("expected batch gone, got %v", err)
	}
	if _, err := env.events.FindByID(ctx, "farm-1", "ev-1"); !domain.IsNotFound(err) {
		t.Fatalf("expected event gone, got %v", err)
	}
	producing, err := env.events.FindProducing(ctx, "farm-1", "lot-1")
	if err != nil {
		t.Fatalf("find producing: %v", err)
	}
	if len(producing) != 0 {
		t.Fatalf("expected lineage edges gone, got %d", len(producing))
	}

	if _, err := env.batches.FindByID(ctx, "farm-2", "lot-9"); err != nil {
		t.Fatalf("other actor's batch must survive: %v", err)
	}
}

func TestDeleteActorUnknown(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewDeleteActorHandler(env.actors, env.items, env.batches, env.processes, env.events, env.locations, env.tx)

	if err := handler.Handle(ctx, DeleteActorCommand{ID: "ghost"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := handler.Handle(ctx, DeleteActorCommand{}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty id, got %v", err)
	}
}
