package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// CreateActorCommand represents the command to register an actor
type CreateActorCommand struct {
	Actor domain.Actor
}

// CreateActorHandler handles create actor command
type CreateActorHandler struct {
	repo domain.ActorRepository
}

// NewCreateActorHandler creates a new create actor handler
func NewCreateActorHandler(repo domain.ActorRepository) *CreateActorHandler {
	return &CreateActorHandler{repo: repo}
}

// Handle executes the create actor command
func (h *CreateActorHandler) Handle(ctx context.Context, cmd CreateActorCommand) (*domain.Actor, error) {
	actor := cmd.Actor
	if actor.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	if actor.Name == "" {
		return nil, domain.Validationf("name is required")
	}

	now := domain.NowUTC()
	if actor.CreatedAt == "" {
		actor.CreatedAt = now
	}
	actor.UpdatedAt = now

	if err := h.repo.Create(ctx, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}
