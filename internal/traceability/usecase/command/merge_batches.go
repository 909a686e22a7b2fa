package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// MergeBatchesCommand represents the command to combine several batches of
// the same item into one output batch.
type MergeBatchesCommand struct {
	EventID        string
	ActorID        string
	SourceBatchIDs []string
	OutputBatchID  string
	OutputQuantity domain.Quantity
	LocationID     string
	Notes          string
	Timestamp      string
}

// MergeBatchesHandler handles merge batches command
type MergeBatchesHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
	tx      domain.TxManager
}

// NewMergeBatchesHandler creates a new merge batches handler
func NewMergeBatchesHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *MergeBatchesHandler {
	return &MergeBatchesHandler{batches: batches, events: events, tx: tx}
}

// Handle executes the merge batches command. All sources must share one
// item; each source ends up depleted.
func (h *MergeBatchesHandler) Handle(ctx context.Context, cmd MergeBatchesCommand) (*domain.Event, error) {
	if cmd.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if len(cmd.SourceBatchIDs) == 0 {
		return nil, domain.Validationf("source_batch_ids are required")
	}
	if cmd.OutputBatchID == "" {
		return nil, domain.Validationf("output_batch_id is required")
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
		sources := make([]*domain.Batch, 0, len(cmd.SourceBatchIDs))
		itemID := ""
		for _, id := range cmd.SourceBatchIDs {
			batch, err := h.batches.FindByID(ctx, cmd.ActorID, id)
			if err != nil {
				if domain.IsNotFound(err) {
					return domain.Validationf("source batch %s not found", id)
				}
				return err
			}
			if !batch.Consumable() {
				return domain.Validationf("input batch %s is not available (status: %s)", batch.ID, batch.Status)
			}
			if itemID == "" {
				itemID = batch.ItemID
			} else if batch.ItemID != itemID {
				return domain.Validationf("cannot merge batches of different items")
			}
			sources = append(sources, batch)
		}
		if err := domain.ValidateMergeQuantities(sources, cmd.OutputQuantity); err != nil {
			return err
		}

		unit := cmd.OutputQuantity.Unit
		if unit == "" {
			unit = "unit"
		}
		output := domain.Batch{
			ID:             cmd.OutputBatchID,
			ActorID:        cmd.ActorID,
			ItemID:         itemID,
			LocationID:     cmd.LocationID,
			Quantity:       &domain.Quantity{Amount: cmd.OutputQuantity.Amount, Unit: unit},
			Status:         domain.BatchStatusActive,
			OriginKind:     domain.OriginMerged,
			ProductionDate: domain.DateOf(timestamp),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := h.batches.Create(ctx, &output); err != nil {
			return err
		}

		inputs := make([]domain.BatchRef, 0, len(sources))
		for _, source := range sources {
			var amount *domain.Quantity
			if source.Quantity != nil {
				q := *source.Quantity
				amount = &q
			}
			inputs = append(inputs, domain.BatchRef{BatchID: source.ID, Amount: amount})

			source.Status = domain.BatchStatusDepleted
			source.UpdatedAt = now
			if err := h.batches.Update(ctx, source); err != nil {
				return err
			}
		}

		outQty := cmd.OutputQuantity
		event = domain.Event{
			ID:         eventID,
			ActorID:    cmd.ActorID,
			Timestamp:  timestamp,
			EventType:  domain.EventTypeMerge,
			LocationID: cmd.LocationID,
			Inputs:     inputs,
			Outputs:    []domain.BatchRef{{BatchID: cmd.OutputBatchID, Amount: &outQty}},
			Notes:      cmd.Notes,
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
