package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// RecordProcessingCommand represents the command to capture a production
// run: inputs consumed, outputs produced, packaging used.
type RecordProcessingCommand struct {
	EventID            string
	ActorID            string
	ProcessID          string
	Inputs             []domain.BatchRef
	Outputs            []domain.BatchRef
	PackagingMaterials []domain.BatchRef
	Waste              []domain.BatchRef
	LocationID         string
	PerformedBy        string
	Notes              string
	Timestamp          string
}

// RecordProcessingHandler handles record processing command
type RecordProcessingHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
	tx      domain.TxManager
}

// NewRecordProcessingHandler creates a new record processing handler
func NewRecordProcessingHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *RecordProcessingHandler {
	return &RecordProcessingHandler{batches: batches, events: events, tx: tx}
}

// Handle executes the record processing command. Consumed amounts are
// deducted from their input batches; output batches that do not exist yet
// are created, existing ones are left untouched.
func (h *RecordProcessingHandler) Handle(ctx context.Context, cmd RecordProcessingCommand) (*domain.Event, error) {
	if cmd.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
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

	event := domain.Event{
		ID:                 eventID,
		ActorID:            cmd.ActorID,
		Timestamp:          timestamp,
		EventType:          domain.EventTypeProcessing,
		LocationID:         cmd.LocationID,
		ProcessID:          cmd.ProcessID,
		Inputs:             cmd.Inputs,
		Outputs:            cmd.Outputs,
		PackagingMaterials: cmd.PackagingMaterials,
		Waste:              cmd.Waste,
		PerformedBy:        cmd.PerformedBy,
		Notes:              cmd.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := h.tx.Do(ctx, func(ctx context.Context) error {
		consumed, err := h.validateInputs(ctx, cmd)
		if err != nil {
			return err
		}

		for _, out := range cmd.Outputs {
			if out.BatchID == "" {
				continue
			}
			if err := h.ensureOutputBatch(ctx, cmd, out, timestamp, now); err != nil {
				return err
			}
		}

		for i, batch := range consumed {
			ref := cmd.Inputs[i]
			if batch == nil || ref.Amount == nil || batch.Quantity == nil {
				continue
			}
			remaining := batch.Quantity.Amount.Sub(ref.Amount.Amount)
			batch.ApplyQuantity(domain.Quantity{Amount: remaining, Unit: batch.Quantity.Unit})
			batch.UpdatedAt = now
			if err := h.batches.Update(ctx, batch); err != nil {
				return err
			}
		}

		return h.events.Create(ctx, &event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// validateInputs resolves and checks every input reference. The returned
// slice is index-aligned with cmd.Inputs; entries without a batch id stay
// nil.
func (h *RecordProcessingHandler) validateInputs(ctx context.Context, cmd RecordProcessingCommand) ([]*domain.Batch, error) {
	consumed := make([]*domain.Batch, len(cmd.Inputs))
	for i, ref := range cmd.Inputs {
		if ref.BatchID == "" {
			continue
		}
		actorID := ref.ActorID
		if actorID == "" {
			actorID = cmd.ActorID
		}
		batch, err := h.batches.FindByID(ctx, actorID, ref.BatchID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.Validationf("input batch %s not found", ref.BatchID)
			}
			return nil, err
		}
		if err := domain.ValidateProductionInput(batch, ref); err != nil {
			return nil, err
		}
		consumed[i] = batch
	}
	return consumed, nil
}

func (h *RecordProcessingHandler) ensureOutputBatch(ctx context.Context, cmd RecordProcessingCommand, out domain.BatchRef, timestamp, now string) error {
	_, err := h.batches.FindByID(ctx, cmd.ActorID, out.BatchID)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	itemID := out.ItemID
	if itemID == "" {
		itemID = "unknown"
	}
	var quantity *domain.Quantity
	if out.Amount != nil {
		q := *out.Amount
		quantity = &q
	}
	batch := domain.Batch{
		ID:             out.BatchID,
		ActorID:        cmd.ActorID,
		ItemID:         itemID,
		LocationID:     cmd.LocationID,
		Quantity:       quantity,
		Status:         domain.BatchStatusActive,
		OriginKind:     domain.OriginTransformed,
		ProductionDate: domain.DateOf(timestamp),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return h.batches.Create(ctx, &batch)
}
