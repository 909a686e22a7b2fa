package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateLocationCommand represents the command to update a location
type UpdateLocationCommand struct {
	Location domain.Location
}

// UpdateLocationHandler handles update location command
type UpdateLocationHandler struct {
	repo domain.LocationRepository
}

// NewUpdateLocationHandler creates a new update location handler
func NewUpdateLocationHandler(repo domain.LocationRepository) *UpdateLocationHandler {
	return &UpdateLocationHandler{repo: repo}
}

// Handle executes the update location command
func (h *UpdateLocationHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (*domain.Location, error) {
	if cmd.Location.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if cmd.Location.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if cmd.Location.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	existing, err := h.repo.FindByID(ctx, cmd.Location.ActorID, cmd.Location.ID)
	if err != nil {
		return nil, err
	}

	location := cmd.Location
	location.CreatedAt = existing.CreatedAt
	location.UpdatedAt = domain.NowUTC()

	if err := h.repo.Update(ctx, &location); err != nil {
		return nil, err
	}
	return &location, nil
}
