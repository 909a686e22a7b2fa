package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// CreateBatchCommand represents the command to register a batch
type CreateBatchCommand struct {
	Batch domain.Batch
}

// CreateBatchHandler handles create batch command
type CreateBatchHandler struct {
	repo domain.BatchRepository
}

// NewCreateBatchHandler creates a new create batch handler
func NewCreateBatchHandler(repo domain.BatchRepository) *CreateBatchHandler {
	return &CreateBatchHandler{repo: repo}
}

// Handle executes the create batch command
func (h *CreateBatchHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (*domain.Batch, error) {
	batch := cmd.Batch
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	if batch.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if batch.ItemID == "" {
		return nil, domain.Validationf("item_id is required")
	}
	if batch.Status == "" {
		batch.Status = domain.BatchStatusActive
	}
	if !domain.ValidBatchStatus(batch.Status) {
		return nil, domain.Validationf("invalid status: %s", batch.Status)
	}
	if batch.Quantity != nil {
		if err := batch.Quantity.Validate(); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateDateOrder(batch.ProductionDate, batch.ExpirationDate); err != nil {
		return nil, err
	}
	for _, a := range batch.Attachments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	now := domain.NowUTC()
	if batch.CreatedAt == "" {
		batch.CreatedAt = now
	}
	batch.UpdatedAt = now

	if err := h.repo.Create(ctx, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}
