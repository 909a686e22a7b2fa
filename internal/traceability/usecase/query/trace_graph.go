package query

import (
	"context"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// Recursion depth bounds for the full traceability graph.
const (
	DefaultGraphDepth = 10
	MaxGraphDepth     = 20
)

// TraceGraphQuery represents the query to build the full upstream graph
// of a batch
type TraceGraphQuery struct {
	ActorID  string
	BatchID  string
	MaxDepth int
}

// GraphEdge links a node to one input batch it was produced from.
type GraphEdge struct {
	Batch     *GraphNode       `json:"batch"`
	Amount    *domain.Quantity `json:"amount,omitempty"`
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
}

// GraphNode is one batch in the upstream graph. Branches that revisit a
// batch or run past the depth limit collapse into a leaf with Visited
// set; references to unknown batches carry Error instead.
type GraphNode struct {
	BatchID        string           `json:"batch_id"`
	ItemID         string           `json:"item_id,omitempty"`
	Status         string           `json:"status,omitempty"`
	ProductionDate string           `json:"production_date,omitempty"`
	Quantity       *domain.Quantity `json:"quantity,omitempty"`
	Inputs         []GraphEdge      `json:"inputs,omitempty"`
	Depth          int              `json:"depth"`
	Visited        bool             `json:"visited,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// TraceGraphHandler handles trace graph query
type TraceGraphHandler struct {
	batches domain.BatchRepository
	events  domain.EventRepository
}

// NewTraceGraphHandler creates a new trace graph handler
func NewTraceGraphHandler(batches domain.BatchRepository, events domain.EventRepository) *TraceGraphHandler {
	return &TraceGraphHandler{batches: batches, events: events}
}

// Handle executes the trace graph query. The actor's events are loaded
// once and indexed by produced batch so the recursion never rescans.
func (h *TraceGraphHandler) Handle(ctx context.Context, query TraceGraphQuery) (*GraphNode, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.BatchID == "" {
		return nil, domain.Validationf("batch_id is required")
	}
	maxDepth := query.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultGraphDepth
	}
	if maxDepth > MaxGraphDepth {
		maxDepth = MaxGraphDepth
	}

	events, err := h.events.FindAll(ctx, query.ActorID, domain.EventFilter{})
	if err != nil {
		return nil, err
	}
	producers := make(map[string][]*domain.Event)
	for i := range events {
		for _, out := range events[i].Outputs {
			if out.BatchID != "" {
				producers[out.BatchID] = append(producers[out.BatchID], &events[i])
			}
		}
	}

	builder := &graphBuilder{
		actorID:   query.ActorID,
		maxDepth:  maxDepth,
		batches:   h.batches,
		producers: producers,
		visited:   make(map[string]bool),
	}
	return builder.build(ctx, query.BatchID, 0)
}

type graphBuilder struct {
	actorID   string
	maxDepth  int
	batches   domain.BatchRepository
	producers map[string][]*domain.Event
	visited   map[string]bool
}

func (b *graphBuilder) build(ctx context.Context, batchID string, depth int) (*GraphNode, error) {
	if depth > b.maxDepth || b.visited[batchID] {
		return &GraphNode{BatchID: batchID, Visited: true, Depth: depth}, nil
	}
	b.visited[batchID] = true

	batch, err := b.batches.FindByID(ctx, b.actorID, batchID)
	if err != nil {
		if domain.IsNotFound(err) {
			return &GraphNode{BatchID: batchID, Error: "not found", Depth: depth}, nil
		}
		return nil, err
	}

	node := &GraphNode{
		BatchID:        batchID,
		ItemID:         batch.ItemID,
		Status:         batch.Status,
		ProductionDate: batch.ProductionDate,
		Quantity:       batch.Quantity,
		Depth:          depth,
	}
	for _, event := range b.producers[batchID] {
		for _, ref := range event.Inputs {
			if ref.BatchID == "" {
				continue
			}
			child, err := b.build(ctx, ref.BatchID, depth+1)
			if err != nil {
				return nil, err
			}
			node.Inputs = append(node.Inputs, GraphEdge{
				Batch:     child,
				Amount:    ref.Amount,
				EventID:   event.ID,
				EventType: event.EventType,
			})
		}
	}
	return node, nil
}
