package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// SplitBatchCommand represents the command to divide a batch into child
// batches. The source is always fully consumed.
type SplitBatchCommand struct {
	EventID       string
	ActorID       string
	SourceBatchID string
	Outputs       []domain.BatchRef
	LocationID    string
	Notes         string
	Timestamp     string
}

// SplitBatchHandler handles split batch command
type SplitBatchHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
	tx      domain.TxManager
}

// NewSplitBatchHandler creates a new split batch handler
func NewSplitBatchHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *SplitBatchHandler {
	return &SplitBatchHandler{batches: batches, events: events, tx: tx}
}

// Handle executes the split batch command. Children inherit the source
// item, production date, and location; the source ends up depleted.
func (h *SplitBatchHandler) Handle(ctx context.Context, cmd SplitBatchCommand) (*domain.Event, error) {
	if cmd.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if cmd.SourceBatchID == "" {
		return nil, domain.Validationf("source_batch_id is required")
	}
	if len(cmd.Outputs) == 0 {
		return nil, domain.Validationf("outputs are required")
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
		source, err := h.batches.FindByID(ctx, cmd.ActorID, cmd.SourceBatchID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.Validationf("source batch %s not found", cmd.SourceBatchID)
			}
			return err
		}
		if !source.Consumable() {
			return domain.Validationf("input batch %s is not available (status: %s)", source.ID, source.Status)
		}
		if err := domain.ValidateSplitQuantities(source, cmd.Outputs); err != nil {
			return err
		}

		sourceUnit := "unit"
		if source.Quantity != nil {
			sourceUnit = source.Quantity.Unit
		}
		location := cmd.LocationID
		if location == "" {
			location = source.LocationID
		}

		for _, out := range cmd.Outputs {
			if out.BatchID == "" {
				continue
			}
			amount := decimal.Zero
			unit := sourceUnit
			if out.Amount != nil {
				amount = out.Amount.Amount
				if out.Amount.Unit != "" {
					unit = out.Amount.Unit
				}
			}
			child := domain.Batch{
				ID:             out.BatchID,
				ActorID:        cmd.ActorID,
				ItemID:         source.ItemID,
				LocationID:     location,
				Quantity:       &domain.Quantity{Amount: amount, Unit: unit},
				Status:         domain.BatchStatusActive,
				OriginKind:     domain.OriginSplit,
				ProductionDate: source.ProductionDate,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := h.batches.Create(ctx, &child); err != nil {
				return err
			}
		}

		var sourceAmount *domain.Quantity
		if source.Quantity != nil {
			q := *source.Quantity
			sourceAmount = &q
		}

		source.Status = domain.BatchStatusDepleted
		source.UpdatedAt = now
		if err := h.batches.Update(ctx, source); err != nil {
			return err
		}

		event = domain.Event{
			ID:         eventID,
			ActorID:    cmd.ActorID,
			Timestamp:  timestamp,
			EventType:  domain.EventTypeSplit,
			LocationID: cmd.LocationID,
			Inputs:     []domain.BatchRef{{BatchID: cmd.SourceBatchID, Amount: sourceAmount}},
			Outputs:    cmd.Outputs,
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
