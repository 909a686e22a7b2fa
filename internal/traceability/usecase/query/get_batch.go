package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GetBatchQuery represents the query to get a batch
type GetBatchQuery struct {
	ActorID string
	ID      string
}

// GetBatchHandler handles get batch query
type GetBatchHandler struct {
	repo domain.BatchRepository
}

// NewGetBatchHandler creates a new get batch handler
func NewGetBatchHandler(repo domain.BatchRepository) *GetBatchHandler {
	return &GetBatchHandler{repo: repo}
}

// Handle executes the get batch query
func (h *GetBatchHandler) Handle(ctx context.Context, query GetBatchQuery) (*domain.Batch, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.ID == "" {
		return nil, domain.Validationf("id is required")
	}
	return h.repo.FindByID(ctx, query.ActorID, query.ID)
}
