package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// CreateLocationCommand represents the command to register a location
type CreateLocationCommand struct {
	Location domain.Location
}

// CreateLocationHandler handles create location command
type CreateLocationHandler struct {
	repo domain.LocationRepository
}

// NewCreateLocationHandler creates a new create location handler
func NewCreateLocationHandler(repo domain.LocationRepository) *CreateLocationHandler {
	return &CreateLocationHandler{repo: repo}
}

// Handle executes the create location command
func (h *CreateLocationHandler) Handle(ctx context.Context, cmd CreateLocationCommand) (*domain.Location, error) {
	location := cmd.Location
	if location.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if location.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if location.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	now := domain.NowUTC()
	if location.CreatedAt == "" {
		location.CreatedAt = now
	}
	location.UpdatedAt = now

	if err := h.repo.Create(ctx, &location); err != nil {
		return nil, err
	}
	return &location, nil
}
