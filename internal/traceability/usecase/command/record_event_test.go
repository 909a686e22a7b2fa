package command

import (
	"context"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

func TestRecordEventStoresDocumentAsGiven(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordEventHandler(env.events, env.tx)

	event, err := handler.Handle(ctx, RecordEventCommand{Event: domain.Event{
		ID:        "ev-ship-1",
		ActorID:   "dist-1",
		EventType: domain.EventTypeShipping,
		Timestamp: "2026-05-01T14:00:00Z",
		Inputs:    []domain.BatchRef{{BatchID: "lot-1", Amount: amountOf(30, "kg")}},
		Notes:     "truck 14, destination north DC",
	}})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if event.CreatedAt == "" || event.UpdatedAt == "" {
		t.Fatal("expected stamped audit fields")
	}

	stored, err := env.events.FindByID(ctx, "dist-1", "ev-ship-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(stored.Inputs) != 1 || stored.Inputs[0].Amount.Amount.String() != "30" {
		t.Fatalf("expected stored input ref, got %+v", stored.Inputs)
	}
}

func TestRecordEventAcceptsExtensionTypes(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordEventHandler(env.events, env.tx)

	event, err := handler.Handle(ctx, RecordEventCommand{Event: domain.Event{
		ActorID:   "dist-1",
		EventType: "x-blockchain-anchor",
	}})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if event.ID == "" || event.Timestamp == "" {
		t.Fatal("expected generated id and timestamp")
	}
}

func TestRecordEventValidation(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordEventHandler(env.events, env.tx)

	tests := []struct {
		name  string
		event domain.Event
	}{
		{name: "missing actor", event: domain.Event{EventType: domain.EventTypeShipping}},
		{name: "missing type", event: domain.Event{ActorID: "dist-1"}},
		{name: "unknown type", event: domain.Event{ActorID: "dist-1", EventType: "teleportation"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handler.Handle(ctx, RecordEventCommand{Event: tt.event}); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordEventDuplicateIDConflicts(t *testing.T) {
	ctx := context.Background()
	env := newCommandEnv()
	handler := NewRecordEventHandler(env.events, env.tx)

	first := domain.Event{ID: "ev-1", ActorID: "dist-1", EventType: domain.EventTypeReceiving}
	if _, err := handler.Handle(ctx, RecordEventCommand{Event: first}); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := handler.Handle(ctx, RecordEventCommand{Event: first}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
