package command

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// UpdateBatchQuantityCommand represents the command to correct the on-hand
// quantity of a batch
type UpdateBatchQuantityCommand struct {
	ActorID  string
	BatchID  string
	Quantity domain.Quantity
}

// UpdateBatchQuantityHandler handles update batch quantity command
type UpdateBatchQuantityHandler struct {
	repo domain.BatchRepository
}

// NewUpdateBatchQuantityHandler creates a new update batch quantity handler
func NewUpdateBatchQuantityHandler(repo domain.BatchRepository) *UpdateBatchQuantityHandler {
	return &UpdateBatchQuantityHandler{repo: repo}
}

// Handle executes the update batch quantity command. A quantity that runs
// out marks the batch depleted.
func (h *UpdateBatchQuantityHandler) Handle(ctx context.Context, cmd UpdateBatchQuantityCommand) (*domain.Batch, error) {
	if cmd.BatchID == "" {
		return nil, domain.Validationf("batch_id is required")
	}
	if err := cmd.Quantity.Validate(); err != nil {
		return nil, err
	}

	batch, err := h.repo.FindByID(ctx, cmd.ActorID, cmd.BatchID)
	if err != nil {
		return nil, err
	}

	batch.ApplyQuantity(cmd.Quantity)
	batch.UpdatedAt = domain.NowUTC()

	if err := h.repo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}
