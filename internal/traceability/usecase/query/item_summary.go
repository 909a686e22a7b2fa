package query

import (
	"context"
	"fmt"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// ItemSummaryQuery represents the query to summarize the batches of an item
type ItemSummaryQuery struct {
	ActorID string
	ItemID  string
}

// ItemBatchSummary is one batch line in an item summary.
type ItemBatchSummary struct {
	BatchID        string           `json:"batch_id"`
	Status         string           `json:"status"`
	ProductionDate string           `json:"production_date,omitempty"`
	Quantity       *domain.Quantity `json:"quantity,omitempty"`
	InputCount     int              `json:"input_count"`
	EventCount     int              `json:"event_count"`
}

// ItemSummary aggregates traceability counts across the batches of an item.
type ItemSummary struct {
	ItemID       string             `json:"item_id"`
	TotalBatches int                `json:"total_batches"`
	Batches      []ItemBatchSummary `json:"batches"`
}

// ItemSummaryHandler handles item summary query
type ItemSummaryHandler struct {
	batches domain.BatchRepository
	trace   *TraceBatchHandler
}

// NewItemSummaryHandler creates a new item summary handler
func NewItemSummaryHandler(batches domain.BatchRepository, trace *TraceBatchHandler) *ItemSummaryHandler {
	return &ItemSummaryHandler{batches: batches, trace: trace}
}

// Handle executes the item summary query
func (h *ItemSummaryHandler) Handle(ctx context.Context, query ItemSummaryQuery) (*ItemSummary, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.ItemID == "" {
		return nil, domain.Validationf("item_id is required")
	}

	batches, err := h.batches.FindAll(ctx, query.ActorID, domain.BatchFilter{ItemID: query.ItemID})
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	summary := &ItemSummary{
		ItemID:       query.ItemID,
		TotalBatches: len(batches),
		Batches:      make([]ItemBatchSummary, 0, len(batches)),
	}
	for i := range batches {
		batch := &batches[i]
		trace, err := h.trace.Handle(ctx, TraceBatchQuery{
			ActorID:   query.ActorID,
			BatchID:   batch.ID,
			Direction: DirectionUpstream,
		})
		if err != nil {
			return nil, err
		}
		summary.Batches = append(summary.Batches, ItemBatchSummary{
			BatchID:        batch.ID,
			Status:         batch.Status,
			ProductionDate: batch.ProductionDate,
			Quantity:       batch.Quantity,
			InputCount:     len(trace.Upstream),
			EventCount:     len(trace.Events),
		})
	}
	return summary, nil
}
