package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateItemCommand represents the command to update an item
type UpdateItemCommand struct {
	Item domain.Item
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.ItemRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.ItemRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.Item.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if cmd.Item.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if cmd.Item.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	existing, err := h.repo.FindByID(ctx, cmd.Item.ActorID, cmd.Item.ID)
	if err != nil {
		return nil, err
	}

	item := cmd.Item
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = domain.NowUTC()

	if err := h.repo.Update(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
