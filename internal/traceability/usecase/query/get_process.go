package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GetProcessQuery represents the query to get a process
type GetProcessQuery struct {
	ActorID string
	ID      string
}

// GetProcessHandler handles get process query
type GetProcessHandler struct {
	repo domain.ProcessRepository
}

// NewGetProcessHandler creates a new get process handler
func NewGetProcessHandler(repo domain.ProcessRepository) *GetProcessHandler {
	return &GetProcessHandler{repo: repo}
}

// Handle executes the get process query
func (h *GetProcessHandler) Handle(ctx context.Context, query GetProcessQuery) (*domain.Process, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	return h.repo.FindByID(ctx, query.ActorID, query.ID)
}
