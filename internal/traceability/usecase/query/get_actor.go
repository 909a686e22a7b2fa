package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GetActorQuery represents the query to get an actor
type GetActorQuery struct {
	ID string
}

// GetActorHandler handles get actor query
type GetActorHandler struct {
	repo domain.ActorRepository
}

// NewGetActorHandler creates a new get actor handler
func NewGetActorHandler(repo domain.ActorRepository) *GetActorHandler {
	return &GetActorHandler{repo: repo}
}

// Handle executes the get actor query
func (h *GetActorHandler) Handle(ctx context.Context, query GetActorQuery) (*domain.Actor, error) {
	if query.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	return h.repo.FindByID(ctx, query.ID)
}
