package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateBatchStatusCommand represents the command to move a batch to a new
// lifecycle status
type UpdateBatchStatusCommand struct {
	ActorID string
	BatchID string
	Status  string
}

// UpdateBatchStatusHandler handles update batch status command
type UpdateBatchStatusHandler struct {
	repo domain.BatchRepository
}

// NewUpdateBatchStatusHandler creates a new update batch status handler
func NewUpdateBatchStatusHandler(repo domain.BatchRepository) *UpdateBatchStatusHandler {
	return &UpdateBatchStatusHandler{repo: repo}
}

// Handle executes the update batch status command. Any transition between
// valid statuses is allowed; corrections are routine in field use.
func (h *UpdateBatchStatusHandler) Handle(ctx context.Context, cmd UpdateBatchStatusCommand) (*domain.Batch, error) {
	if cmd.BatchID == "" {
		return nil, domain.Validationf("batch_id is required")
	}
	if cmd.Status == "" {
		return nil, domain.Validationf("status field required")
	}
	if !domain.ValidBatchStatus(cmd.Status) {
		return nil, domain.Validationf("invalid status: %s", cmd.Status)
	}

	batch, err := h.repo.FindByID(ctx, cmd.ActorID, cmd.BatchID)
	if err != nil {
		return nil, err
	}

	batch.Status = cmd.Status
	batch.UpdatedAt = domain.NowUTC()

	if err := h.repo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}
