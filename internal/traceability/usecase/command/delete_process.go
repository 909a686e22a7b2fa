package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// DeleteProcessCommand represents the command to delete a process
type DeleteProcessCommand struct {
	ActorID string
	ID      string
}

// DeleteProcessHandler handles delete process command
type DeleteProcessHandler struct {
	repo domain.ProcessRepository
}

// NewDeleteProcessHandler creates a new delete process handler
func NewDeleteProcessHandler(repo domain.ProcessRepository) *DeleteProcessHandler {
	return &DeleteProcessHandler{repo: repo}
}

// Handle executes the delete process command
func (h *DeleteProcessHandler) Handle(ctx context.Context, cmd DeleteProcessCommand) error {
	if cmd.ID == "" {
		return domain.Validationf("id is required")
	}
	if _, err := h.repo.FindByID(ctx, cmd.ActorID, cmd.ID); err != nil {
		return err
	}
	return h.repo.Delete(ctx, cmd.ActorID, cmd.ID)
}
