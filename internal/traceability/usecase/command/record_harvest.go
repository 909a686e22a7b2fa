package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// RecordHarvestCommand represents the command to bring new material into
// the system: it creates the harvested batch and its harvest event
// together.
type RecordHarvestCommand struct {
	EventID     string
	ActorID     string
	Batch       domain.Batch
	PerformedBy string
	Notes       string
	Timestamp   string
}

// RecordHarvestHandler handles record harvest command
type RecordHarvestHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
	tx      domain.TxManager
}

// NewRecordHarvestHandler creates a new record harvest handler
func NewRecordHarvestHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	tx domain.TxManager,
) *RecordHarvestHandler {
	return &RecordHarvestHandler{batches: batches, events: events, tx: tx}
}

// Handle executes the record harvest command
func (h *RecordHarvestHandler) Handle(ctx context.Context, cmd RecordHarvestCommand) (*domain.Event, error) {
	if cmd.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	batch := cmd.Batch
	if batch.ItemID == "" {
		return nil, domain.Validationf("item_id is required")
	}
	if batch.Quantity != nil {
		if err := batch.Quantity.Validate(); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateDateOrder(batch.ProductionDate, batch.ExpirationDate); err != nil {
		return nil, err
	}

	now := domain.NowUTC()
	timestamp := cmd.Timestamp
	if timestamp == "" {
		timestamp = now
	}

	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	batch.ActorID = cmd.ActorID
	batch.Status = domain.BatchStatusActive
	batch.OriginKind = domain.OriginHarvested
	if batch.ProductionDate == "" {
		batch.ProductionDate = domain.DateOf(timestamp)
	}
	batch.CreatedAt = now
	batch.UpdatedAt = now

	eventID := cmd.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	var amount *domain.Quantity
	if batch.Quantity != nil {
		q := *batch.Quantity
		amount = &q
	}
	event := domain.Event{
		ID:          eventID,
		ActorID:     cmd.ActorID,
		Timestamp:   timestamp,
		EventType:   domain.EventTypeHarvest,
		LocationID:  batch.LocationID,
		Outputs:     []domain.BatchRef{{BatchID: batch.ID, Amount: amount}},
		PerformedBy: cmd.PerformedBy,
		Notes:       cmd.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := h.tx.Do(ctx, func(ctx context.Context) error {
		if err := h.batches.Create(ctx, &batch); err != nil {
			return err
		}
		return h.events.Create(ctx, &event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}
