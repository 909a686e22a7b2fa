package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GetLocationQuery represents the query to get a location
type GetLocationQuery struct {
	ActorID string
	ID      string
}

// GetLocationHandler handles get location query
type GetLocationHandler struct {
	repo domain.LocationRepository
}

// NewGetLocationHandler creates a new get location handler
func NewGetLocationHandler(repo domain.LocationRepository) *GetLocationHandler {
	return &GetLocationHandler{repo: repo}
}

// Handle executes the get location query
func (h *GetLocationHandler) Handle(ctx context.Context, query GetLocationQuery) (*domain.Location, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	return h.repo.FindByID(ctx, query.ActorID, query.ID)
}
