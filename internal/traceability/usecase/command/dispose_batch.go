package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// DisposeBatchCommand represents the command to dispose of a batch with an
// audit reason.
type DisposeBatchCommand struct {
	EventID    string
	ActorID    string
	BatchID    string
	Reason     string
	LocationID string
	Notes      string
	Timestamp  string
}

// DisposeBatchHandler handles dispose batch command
type DisposeBatchHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
	tx      domain.TxManager
}

// NewDisposeBatchHandler creates a new dispose batch handler
func NewDisposeBatchHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *DisposeBatchHandler {
	return &DisposeBatchHandler{batches: batches, events: events, tx: tx}
}

// Handle executes the dispose batch command
func (h *DisposeBatchHandler) Handle(ctx context.Context, cmd DisposeBatchCommand) (*domain.Event, error) {
	if cmd.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if cmd.BatchID == "" {
		return nil, domain.Validationf("batch_id is required")
	}
	if cmd.Reason == "" {
		return nil, domain.Validationf("reason is required")
	}

	eventID := cmd.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	now := domain.NowUTC()
	timestamp := cmd.Timestamp
	if timestamp == "" {
		timestamp = now
	}

	var event domain.Event
	err := h.tx.Do(ctx, func(ctx context.Context) error {
		batch, err := h.batches.FindByID(ctx, cmd.ActorID, cmd.BatchID)
		if err != nil {
			return err
		}

		notes := "Reason: " + cmd.Reason
		if cmd.Notes != "" {
			notes += ". " + cmd.Notes
		}

		var amount *domain.Quantity
		if batch.Quantity != nil {
			q := *batch.Quantity
			amount = &q
		}

		batch.Status = domain.BatchStatusDisposed
		batch.UpdatedAt = now
		if err := h.batches.Update(ctx, batch); err != nil {
			return err
		}

		event = domain.Event{
			ID:         eventID,
			ActorID:    cmd.ActorID,
			Timestamp:  timestamp,
			EventType:  domain.EventTypeDisposal,
			LocationID: cmd.LocationID,
			Inputs:     []domain.BatchRef{{BatchID: cmd.BatchID, Amount: amount}},
			Notes:      notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return h.events.Create(ctx, &event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}
