package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateProcessCommand represents the command to update a process
type UpdateProcessCommand struct {
	Process domain.Process
}

// UpdateProcessHandler handles update process command
type UpdateProcessHandler struct {
	repo domain.ProcessRepository
}

// NewUpdateProcessHandler creates a new update process handler
func NewUpdateProcessHandler(repo domain.ProcessRepository) *UpdateProcessHandler {
	return &UpdateProcessHandler{repo: repo}
}

// Handle executes the update process command
func (h *UpdateProcessHandler) Handle(ctx context.Context, cmd UpdateProcessCommand) (*domain.Process, error) {
	if cmd.Process.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if cmd.Process.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if cmd.Process.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	existing, err := h.repo.FindByID(ctx, cmd.Process.ActorID, cmd.Process.ID)
	if err != nil {
		return nil, err
	}

	process := cmd.Process
	process.CreatedAt = existing.CreatedAt
	process.UpdatedAt = domain.NowUTC()

	if err := h.repo.Update(ctx, &process); err != nil {
		return nil, err
	}
	return &process, nil
}
