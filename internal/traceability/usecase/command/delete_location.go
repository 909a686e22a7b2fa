package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// DeleteLocationCommand represents the command to delete a location
type DeleteLocationCommand struct {
	ActorID string
	ID      string
}

// DeleteLocationHandler handles delete location command
type DeleteLocationHandler struct {
	repo domain.LocationRepository
}

// NewDeleteLocationHandler creates a new delete location handler
func NewDeleteLocationHandler(repo domain.LocationRepository) *DeleteLocationHandler {
	return &DeleteLocationHandler{repo: repo}
}

// Handle executes the delete location command
func (h *DeleteLocationHandler) Handle(ctx context.Context, cmd DeleteLocationCommand) error {
	if cmd.ID == "" {
		return domain.Validationf("id is required")
	}
	if _, err := h.repo.FindByID(ctx, cmd.ActorID, cmd.ID); err != nil {
		return err
	}
	return h.repo.Delete(ctx, cmd.ActorID, cmd.ID)
}
