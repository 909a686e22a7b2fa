package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// CreateProcessCommand represents the command to register a process
type CreateProcessCommand struct {
	Process domain.Process
}

// CreateProcessHandler handles create process command
type CreateProcessHandler struct {
	repo domain.ProcessRepository
}

// NewCreateProcessHandler creates a new create process handler
func NewCreateProcessHandler(repo domain.ProcessRepository) *CreateProcessHandler {
	return &CreateProcessHandler{repo: repo}
}

// Handle executes the create process command
func (h *CreateProcessHandler) Handle(ctx context.Context, cmd CreateProcessCommand) (*domain.Process, error) {
	process := cmd.Process
	if process.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if process.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if process.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	for _, a := range process.Attachments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	now := domain.NowUTC()
	if process.CreatedAt == "" {
		process.CreatedAt = now
	}
	process.UpdatedAt = now

	if err := h.repo.Create(ctx, &process); err != nil {
		return nil, err
	}
	return &process, nil
}
