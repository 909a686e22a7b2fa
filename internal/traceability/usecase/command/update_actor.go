package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateActorCommand represents the command to update an actor profile
type UpdateActorCommand struct {
	Actor domain.Actor
}

// UpdateActorHandler handles update actor command
type UpdateActorHandler struct {
	repo domain.ActorRepository
}

// NewUpdateActorHandler creates a new update actor handler
func NewUpdateActorHandler(repo domain.ActorRepository) *UpdateActorHandler {
	return &UpdateActorHandler{repo: repo}
}

// Handle executes the update actor command
func (h *UpdateActorHandler) Handle(ctx context.Context, cmd UpdateActorCommand) (*domain.Actor, error) {
	if cmd.Actor.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if cmd.Actor.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	existing, err := h.repo.FindByID(ctx, cmd.Actor.ID)
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor
	actor.CreatedAt = existing.CreatedAt
	actor.UpdatedAt = domain.NowUTC()

	if err := h.repo.Update(ctx, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}
