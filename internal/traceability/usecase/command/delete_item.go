package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	ActorID string
	ID      string
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo domain.ItemRepository
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.ItemRepository) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if cmd.ID == "" {
		return domain.Validationf("id is required")
	}
	if _, err := h.repo.FindByID(ctx, cmd.ActorID, cmd.ID); err != nil {
		return err
	}
	return h.repo.Delete(ctx, cmd.ActorID, cmd.ID)
}
