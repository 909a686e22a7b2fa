package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ListLocationsQuery represents the query to list the locations of an actor
type ListLocationsQuery struct {
	ActorID string
	Limit   int
	Offset  int
}

// ListLocationsHandler handles list locations query
type ListLocationsHandler struct {
	repo domain.LocationRepository
}

// NewListLocationsHandler creates a new list locations handler
func NewListLocationsHandler(repo domain.LocationRepository) *ListLocationsHandler {
	return &ListLocationsHandler{repo: repo}
}

// Handle executes the list locations query
func (h *ListLocationsHandler) Handle(ctx context.Context, query ListLocationsQuery) ([]domain.Location, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}

	locations, err := h.repo.FindAll(ctx, query.ActorID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return locations, nil
}
