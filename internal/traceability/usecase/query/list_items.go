package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ListItemsQuery represents the query to list the items of an actor
type ListItemsQuery struct {
	ActorID string
	Limit   int
	Offset  int
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.ItemRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) ([]domain.Item, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}

	items, err := h.repo.FindAll(ctx, query.ActorID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}
