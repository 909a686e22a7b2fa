package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// RecordEventCommand represents the command to append an event to the log.
// Inputs and outputs are stored as given; movement and observation events
// carry no engine semantics and get their meaning at read time.
type RecordEventCommand struct {
	Event domain.Event
}

// RecordEventHandler handles record event command
type RecordEventHandler struct {
	events domain.EventRepository
	tx     domain.TxManager
}

// NewRecordEventHandler creates a new record event handler
func NewRecordEventHandler(events domain.EventRepository, tx domain.TxManager) *RecordEventHandler {
	return &RecordEventHandler{events: events, tx: tx}
}

// Handle executes the record event command
func (h *RecordEventHandler) Handle(ctx context.Context, cmd RecordEventCommand) (*domain.Event, error) {
	event := cmd.Event
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if event.EventType == "" {
		return nil, domain.Validationf("event_type is required")
	}
	if !domain.ValidEventType(event.EventType) {
		return nil, domain.Validationf("invalid event_type: %s", event.EventType)
	}
	for _, a := range event.Attachments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	now := domain.NowUTC()
	if event.Timestamp == "" {
		event.Timestamp = now
	}
	if event.CreatedAt == "" {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	err := h.tx.Do(ctx, func(ctx context.Context) error {
		return h.events.Create(ctx, &event)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}
