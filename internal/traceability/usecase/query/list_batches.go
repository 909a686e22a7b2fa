package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ListBatchesQuery represents the query to list the batches of an actor
type ListBatchesQuery struct {
	ActorID string
	Status  string // Optional: filter by status
	ItemID  string // Optional: filter by item
	Limit   int
	Offset  int
}

// ListBatchesHandler handles list batches query
type ListBatchesHandler struct {
	repo domain.BatchRepository
}

// NewListBatchesHandler creates a new list batches handler
func NewListBatchesHandler(repo domain.BatchRepository) *ListBatchesHandler {
	return &ListBatchesHandler{repo: repo}
}

// Handle executes the list batches query
func (h *ListBatchesHandler) Handle(ctx context.Context, query ListBatchesQuery) ([]domain.Batch, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}

	batches, err := h.repo.FindAll(ctx, query.ActorID, domain.BatchFilter{
		Status: query.Status,
		ItemID: query.ItemID,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	return batches, nil
}
