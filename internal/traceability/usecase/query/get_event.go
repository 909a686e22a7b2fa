package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GetEventQuery represents the query to get an event
type GetEventQuery struct {
	ActorID string
	ID      string
}

// GetEventHandler handles get event query
type GetEventHandler struct {
	repo domain.EventRepository
}

// NewGetEventHandler creates a new get event handler
func NewGetEventHandler(repo domain.EventRepository) *GetEventHandler {
	return &GetEventHandler{repo: repo}
}

// Handle executes the get event query
func (h *GetEventHandler) Handle(ctx context.Context, query GetEventQuery) (*domain.Event, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	return h.repo.FindByID(ctx, query.ActorID, query.ID)
}
