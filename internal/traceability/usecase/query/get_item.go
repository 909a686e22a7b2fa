package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GetItemQuery represents the query to get an item
type GetItemQuery struct {
	ActorID string
	ID      string
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.ItemRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(repo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*domain.Item, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	return h.repo.FindByID(ctx, query.ActorID, query.ID)
}
