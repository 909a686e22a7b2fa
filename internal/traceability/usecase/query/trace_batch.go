package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// Trace directions.
const (
	DirectionUpstream   = "upstream"
	DirectionDownstream = "downstream"
	DirectionBoth       = "both"
)

// TraceBatchQuery represents the query to trace a batch one hop upstream
// and/or downstream
type TraceBatchQuery struct {
	ActorID   string
	BatchID   string
	Direction string
}

// TraceLink is one neighboring batch reached through an event.
type TraceLink struct {
	BatchID string           `json:"batch_id"`
	ItemID  string           `json:"item_id"`
	Amount  *domain.Quantity `json:"amount,omitempty"`
	Status  string           `json:"status"`
	EventID string           `json:"event_id"`
}

// BatchTrace lists the immediate upstream and downstream neighbors of a
// batch together with the events connecting them. References to batches
// that no longer resolve are left out; the events still appear.
type BatchTrace struct {
	BatchID    string         `json:"batch_id"`
	ActorID    string         `json:"actor_id"`
	Upstream   []TraceLink    `json:"upstream"`
	Downstream []TraceLink    `json:"downstream"`
	Events     []domain.Event `json:"events"`
}

// TraceBatchHandler handles trace batch query
type TraceBatchHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
}

// NewTraceBatchHandler creates a new trace batch handler
func NewTraceBatchHandler(batches domain.BatchRepository, events domain.EventRepository) *TraceBatchHandler {
	return &TraceBatchHandler{batches: batches, events: events}
}

// Handle executes the trace batch query
func (h *TraceBatchHandler) Handle(ctx context.Context, query TraceBatchQuery) (*BatchTrace, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.BatchID == "" {
		return nil, domain.Validationf("batch_id is required")
	}
	direction := query.Direction
	if direction == "" {
		direction = DirectionBoth
	}
	if direction != DirectionUpstream && direction != DirectionDownstream && direction != DirectionBoth {
		return nil, domain.Validationf("direction must be upstream, downstream, or both")
	}

	trace := &BatchTrace{
		BatchID:    query.BatchID,
		ActorID:    query.ActorID,
		Upstream:   []TraceLink{},
		Downstream: []TraceLink{},
		Events:     []domain.Event{},
	}
	seenEvents := make(map[string]bool)

	if direction == DirectionUpstream || direction == DirectionBoth {
		producing, err := h.events.FindProducing(ctx, query.ActorID, query.BatchID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		for _, event := range producing {
			if !seenEvents[event.ID] {
				seenEvents[event.ID] = true
				trace.Events = append(trace.Events, event)
			}
			for _, ref := range event.Inputs {
				link, err := h.resolveLink(ctx, query.ActorID, event.ID, ref, seen)
				if err != nil {
					return nil, err
				}
				if link != nil {
					trace.Upstream = append(trace.Upstream, *link)
				}
			}
		}
	}

	if direction == DirectionDownstream || direction == DirectionBoth {
		consuming, err := h.events.FindConsuming(ctx, query.ActorID, query.BatchID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		for _, event := range consuming {
			if !seenEvents[event.ID] {
				seenEvents[event.ID] = true
				trace.Events = append(trace.Events, event)
			}
			for _, ref := range event.Outputs {
				link, err := h.resolveLink(ctx, query.ActorID, event.ID, ref, seen)
				if err != nil {
					return nil, err
				}
				if link != nil {
					trace.Downstream = append(trace.Downstream, *link)
				}
			}
		}
	}

	return trace, nil
}

// resolveLink turns a batch reference into a trace link, skipping refs
// already seen and refs whose batch cannot be found.
func (h *TraceBatchHandler) resolveLink(ctx context.Context, actorID, eventID string, ref domain.BatchRef, seen map[string]bool) (*TraceLink, error) {
	if ref.BatchID == "" || seen[ref.BatchID] {
		return nil, nil
	}
	owner := ref.ActorID
	if owner == "" {
		owner = actorID
	}
	batch, err := h.batches.FindByID(ctx, owner, ref.BatchID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	seen[ref.BatchID] = true
	return &TraceLink{
		BatchID: batch.ID,
		ItemID:  batch.ItemID,
		Amount:  ref.Amount,
		Status:  batch.Status,
		EventID: eventID,
	}, nil
}
