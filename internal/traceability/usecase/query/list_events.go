package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ListEventsQuery represents the query to list the events of an actor
type ListEventsQuery struct {
	ActorID   string
	EventType string // Optional: filter by event type
	Limit     int
	Offset    int
}

// ListEventsHandler handles list events query
type ListEventsHandler struct {
	repo domain.EventRepository
}

// NewListEventsHandler creates a new list events handler
func NewListEventsHandler(repo domain.EventRepository) *ListEventsHandler {
	return &ListEventsHandler{repo: repo}
}

// Handle executes the list events query
func (h *ListEventsHandler) Handle(ctx context.Context, query ListEventsQuery) ([]domain.Event, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}

	events, err := h.repo.FindAll(ctx, query.ActorID, domain.EventFilter{
		EventType: query.EventType,
		Limit:     query.Limit,
		Offset:    query.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}
