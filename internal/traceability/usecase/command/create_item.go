package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// CreateItemCommand represents the command to register an item
type CreateItemCommand struct {
	Item domain.Item
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo domain.ItemRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.ItemRepository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error) {
	item := cmd.Item
	if item.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if item.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if item.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	now := domain.NowUTC()
	if item.CreatedAt == "" {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if err := h.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
