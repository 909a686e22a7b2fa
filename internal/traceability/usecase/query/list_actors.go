package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ListActorsQuery represents the query to list all actors
type ListActorsQuery struct {
	Limit  int
	Offset int
}

// ListActorsHandler handles list actors query
type ListActorsHandler struct {
	repo domain.ActorRepository
}

// NewListActorsHandler creates a new list actors handler
func NewListActorsHandler(repo domain.ActorRepository) *ListActorsHandler {
	return &ListActorsHandler{repo: repo}
}

// Handle executes the list actors query
func (h *ListActorsHandler) Handle(ctx context.Context, query ListActorsQuery) ([]domain.Actor, error) {
	if query.Limit <= 0 {
		query.Limit = 100
	}

	actors, err := h.repo.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}

	return actors, nil
}
