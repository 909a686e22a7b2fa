package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ListProcessesQuery represents the query to list the processes of an actor
type ListProcessesQuery struct {
	ActorID string
	Limit   int
	Offset  int
}

// ListProcessesHandler handles list processes query
type ListProcessesHandler struct {
	repo domain.ProcessRepository
}

// NewListProcessesHandler creates a new list processes handler
func NewListProcessesHandler(repo domain.ProcessRepository) *ListProcessesHandler {
	return &ListProcessesHandler{repo: repo}
}

// Handle executes the list processes query
func (h *ListProcessesHandler) Handle(ctx context.Context, query ListProcessesQuery) ([]domain.Process, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}

	processes, err := h.repo.FindAll(ctx, query.ActorID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	return processes, nil
}
