package query

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// RecallReportQuery represents the query to generate a recall report
type RecallReportQuery struct {
	ActorID string
	BatchID string
}

// RecallMeta identifies the report and whether it covers a drill.
type RecallMeta struct {
	BatchID      string `json:"batch_id"`
	ActorID      string `json:"actor_id"`
	GeneratedAt  string `json:"generated_at"`
	IsMockRecall bool   `json:"is_mock_recall"`
}

// RecallScope reconciles where the recalled material went, all in the
// target batch's unit. MathCheck reports whether harvested material is
// accounted for within the reconciliation tolerance:
//
//	total_harvested ~= current_inventory + distributed + waste + processed
//
// Processed covers material consumed by transformation events; the
// products themselves appear in the downstream tree.
type RecallScope struct {
	TotalHarvested   decimal.Decimal `json:"total_harvested"`
	Unit             string          `json:"unit"`
	CurrentInventory decimal.Decimal `json:"current_inventory"`
	Distributed      decimal.Decimal `json:"distributed"`
	Waste            decimal.Decimal `json:"waste"`
	Processed        decimal.Decimal `json:"processed"`
	MathCheck        bool            `json:"math_check"`
}

// MarshalJSON writes the amounts as bare JSON numbers.
func (s RecallScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalHarvested   json.RawMessage `json:"total_harvested"`
		Unit             string          `json:"unit"`
		CurrentInventory json.RawMessage `json:"current_inventory"`
		Distributed      json.RawMessage `json:"distributed"`
		Waste            json.RawMessage `json:"waste"`
		Processed        json.RawMessage `json:"processed"`
		MathCheck        bool            `json:"math_check"`
	}{
		TotalHarvested:   json.RawMessage(s.TotalHarvested.String()),
		Unit:             s.Unit,
		CurrentInventory: json.RawMessage(s.CurrentInventory.String()),
		Distributed:      json.RawMessage(s.Distributed.String()),
		Waste:            json.RawMessage(s.Waste.String()),
		Processed:        json.RawMessage(s.Processed.String()),
		MathCheck:        s.MathCheck,
	})
}

// RecallLocation names where an upstream event took place.
type RecallLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecallInputDetails describes an input batch implicated upstream.
type RecallInputDetails struct {
	ItemID          string `json:"item_id"`
	LotCode         string `json:"lot_code,omitempty"`
	ExternalLotCode string `json:"external_lot_code,omitempty"`
}

// RecallInput is one input reference on an upstream event. Details is nil
// when the referenced batch no longer resolves.
type RecallInput struct {
	BatchID string              `json:"batch_id"`
	Details *RecallInputDetails `json:"details"`
}

// RecallUpstreamNode is one event in the ingredient chain behind the
// recalled batch. Nodes are listed deepest first.
type RecallUpstreamNode struct {
	EventID  string          `json:"event_id"`
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Location *RecallLocation `json:"location"`
	Inputs   []RecallInput   `json:"inputs"`
}

// RecallDestination names where distributed material went. Buyer comes
// from the shipping event notes, Contact from who performed it.
type RecallDestination struct {
	Buyer   string `json:"buyer"`
	Contact string `json:"contact"`
}

// RecallDownstreamNode is one event in the distribution chain of the
// recalled batch. Destination is set on shipping events only.
type RecallDownstreamNode struct {
	EventID     string             `json:"event_id"`
	Type        string             `json:"type"`
	Date        string             `json:"date"`
	Destination *RecallDestination `json:"destination"`
	Outputs     []string           `json:"outputs"`
}

// RecallReport is the full recall picture for one batch: scope
// reconciliation plus the upstream and downstream event chains.
type RecallReport struct {
	Meta       RecallMeta             `json:"meta"`
	Scope      RecallScope            `json:"scope"`
	Upstream   []RecallUpstreamNode   `json:"upstream"`
	Downstream []RecallDownstreamNode `json:"downstream"`
}

// RecallReportHandler handles recall report query
type RecallReportHandler struct {
	batches   domain.BatchRepository
	events    domain.EventRepository
	locations domain.LocationRepository
}

// NewRecallReportHandler creates a new recall report handler
func NewRecallReportHandler(
	batches domain.BatchRepository,
	events domain.EventRepository,
	locations domain.LocationRepository,
) *RecallReportHandler {
	return &RecallReportHandler{batches: batches, events: events, locations: locations}
}

// Handle executes the recall report query
func (h *RecallReportHandler) Handle(ctx context.Context, query RecallReportQuery) (*RecallReport, error) {
	if query.ActorID == "" {
		return nil, domain.Validationf("actor_id is required")
	}
	if query.BatchID == "" {
		return nil, domain.Validationf("batch_id is required")
	}

	target, err := h.batches.FindByID(ctx, query.ActorID, query.BatchID)
	if err != nil {
		return nil, err
	}

	report := &RecallReport{
		Meta: RecallMeta{
			BatchID:      query.BatchID,
			ActorID:      query.ActorID,
			GeneratedAt:  domain.NowUTC(),
			IsMockRecall: target.IsMockRecall,
		},
		Upstream:   []RecallUpstreamNode{},
		Downstream: []RecallDownstreamNode{},
	}

	current := decimal.Zero
	if target.Quantity != nil {
		report.Scope.Unit = target.Quantity.Unit
		current = target.Quantity.Amount
	}

	creation, err := h.findCreationEvent(ctx, query.ActorID, query.BatchID)
	if err != nil {
		return nil, err
	}

	// Harvested amount comes from the creating event's output when one
	// exists, else from the batch record itself.
	harvested := current
	if creation != nil {
		for _, out := range creation.Outputs {
			if out.BatchID == query.BatchID && out.Amount != nil {
				harvested = out.Amount.Amount
				break
			}
		}
	}
	report.Scope.TotalHarvested = harvested

	if target.Status == domain.BatchStatusDepleted || target.Status == domain.BatchStatusDisposed {
		current = decimal.Zero
	}
	report.Scope.CurrentInventory = current

	if creation != nil {
		visited := make(map[string]bool)
		if err := h.traceUpstream(ctx, query.ActorID, creation, &report.Upstream, visited); err != nil {
			return nil, err
		}
	}

	visited := make(map[string]bool)
	if err := h.traceDownstream(ctx, query.ActorID, query.BatchID, query.BatchID, report, visited); err != nil {
		return nil, err
	}

	accounted := report.Scope.CurrentInventory.
		Add(report.Scope.Distributed).
		Add(report.Scope.Waste).
		Add(report.Scope.Processed)
	drift := harvested.Sub(accounted).Abs()
	report.Scope.MathCheck = drift.LessThanOrEqual(domain.ReconciliationTolerance.Mul(harvested))

	return report, nil
}

// findCreationEvent returns the earliest event that produced the batch,
// or nil when the batch has no recorded origin.
func (h *RecallReportHandler) findCreationEvent(ctx context.Context, actorID, batchID string) (*domain.Event, error) {
	producing, err := h.events.FindProducing(ctx, actorID, batchID)
	if err != nil {
		return nil, err
	}
	if len(producing) == 0 {
		return nil, nil
	}
	return &producing[0], nil
}

func (h *RecallReportHandler) traceUpstream(
	ctx context.Context,
	actorID string,
	event *domain.Event,
	results *[]RecallUpstreamNode,
	visited map[string]bool,
) error {
	if visited[event.ID] {
		return nil
	}
	visited[event.ID] = true

	node := RecallUpstreamNode{
		EventID: event.ID,
		Type:    event.EventType,
		Date:    event.Timestamp,
		Inputs:  []RecallInput{},
	}
	if event.LocationID != "" {
		loc, err := h.locations.FindByID(ctx, actorID, event.LocationID)
		if err == nil {
			node.Location = &RecallLocation{ID: loc.ID, Name: loc.Name}
		} else if !domain.IsNotFound(err) {
			return err
		}
	}

	for _, ref := range event.Inputs {
		if ref.BatchID == "" {
			continue
		}
		input := RecallInput{BatchID: ref.BatchID}

		owner := ref.ActorID
		if owner == "" {
			owner = actorID
		}
		batch, err := h.batches.FindByID(ctx, owner, ref.BatchID)
		switch {
		case err == nil:
			input.Details = &RecallInputDetails{
				ItemID:          batch.ItemID,
				LotCode:         batch.LotCode,
				ExternalLotCode: batch.ExternalIDs["lot_code"],
			}
			prev, err := h.findCreationEvent(ctx, actorID, ref.BatchID)
			if err != nil {
				return err
			}
			if prev != nil {
				if err := h.traceUpstream(ctx, actorID, prev, results, visited); err != nil {
					return err
				}
			}
		case !domain.IsNotFound(err):
			return err
		}

		node.Inputs = append(node.Inputs, input)
	}

	// Deepest ingredients land first.
	*results = append(*results, node)
	return nil
}

func (h *RecallReportHandler) traceDownstream(
	ctx context.Context,
	actorID, batchID, targetID string,
	report *RecallReport,
	visited map[string]bool,
) error {
	events, err := h.events.FindConsuming(ctx, actorID, batchID)
	if err != nil {
		return err
	}

	for i := range events {
		event := &events[i]
		if visited[event.ID] {
			continue
		}
		visited[event.ID] = true

		node := RecallDownstreamNode{
			EventID: event.ID,
			Type:    event.EventType,
			Date:    event.Timestamp,
			Outputs: []string{},
		}
		if event.EventType == domain.EventTypeShipping {
			buyer := event.Notes
			if buyer == "" {
				buyer = "Unknown Buyer"
			}
			contact := event.PerformedBy
			if contact == "" {
				contact = "See CRM"
			}
			node.Destination = &RecallDestination{Buyer: buyer, Contact: contact}
		}

		// Only events consuming the recalled batch itself move scope;
		// consumption further down the chain is already covered by the
		// amounts handed to those children.
		if batchID == targetID {
			accumulateScope(&report.Scope, event, targetID)
		}

		for _, out := range event.Outputs {
			if out.BatchID == "" {
				continue
			}
			node.Outputs = append(node.Outputs, out.BatchID)
			if err := h.traceDownstream(ctx, actorID, out.BatchID, targetID, report, visited); err != nil {
				return err
			}
		}

		report.Downstream = append(report.Downstream, node)
	}
	return nil
}

func accumulateScope(scope *RecallScope, event *domain.Event, targetID string) {
	consumed := decimal.Zero
	for _, ref := range event.Inputs {
		if ref.BatchID == targetID && ref.Amount != nil {
			consumed = consumed.Add(ref.Amount.Amount)
		}
	}
	wasted := decimal.Zero
	for _, ref := range event.Waste {
		if ref.BatchID == targetID && ref.Amount != nil {
			wasted = wasted.Add(ref.Amount.Amount)
		}
	}
	switch event.EventType {
	case domain.EventTypeShipping:
		scope.Distributed = scope.Distributed.Add(consumed)
	case domain.EventTypeDisposal:
		scope.Waste = scope.Waste.Add(consumed)
	case domain.EventTypeProcessing, domain.EventTypePackaging, domain.EventTypeSplit, domain.EventTypeMerge:
		// Waste declared on the event is the share of the consumed amount
		// that never reached an output. It cannot drive processed negative.
		processed := consumed.Sub(wasted)
		if processed.IsNegative() {
			processed = decimal.Zero
		}
		scope.Waste = scope.Waste.Add(wasted)
		scope.Processed = scope.Processed.Add(processed)
	}
}
