package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateEventCommand represents the command to amend event metadata. Only
// notes and timestamp may change; inputs and outputs are immutable once
// recorded.
type UpdateEventCommand struct {
	ActorID   string
	EventID   string
	Notes     string
	Timestamp string
}

// UpdateEventHandler handles update event command
type UpdateEventHandler struct {
	events domain.EventRepository
}

// NewUpdateEventHandler creates a new update event handler
func NewUpdateEventHandler(events domain.EventRepository) *UpdateEventHandler {
	return &UpdateEventHandler{events: events}
}

// Handle executes the update event command
func (h *UpdateEventHandler) Handle(ctx context.Context, cmd UpdateEventCommand) (*domain.Event, error) {
	if cmd.EventID == "" {
		return nil, domain.Validationf("event_id is required")
	}
	if cmd.Notes == "" && cmd.Timestamp == "" {
		return nil, domain.Validationf("nothing to update")
	}

	event, err := h.events.FindByID(ctx, cmd.ActorID, cmd.EventID)
	if err != nil {
		return nil, err
	}

	if cmd.Notes != "" {
		event.Notes = cmd.Notes
	}
	if cmd.Timestamp != "" {
		event.Timestamp = cmd.Timestamp
	}
	event.UpdatedAt = domain.NowUTC()

	if err := h.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
