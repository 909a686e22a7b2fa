package http

import (
	"net/http"
	"testing"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/usecase/query"
)

// TestHarvestToRecallFlow drives the full lifecycle over the API: harvest,
// split, trace, recall report.
func TestHarvestToRecallFlow(t *testing.T) {
	code, resp := doJSON(t, http.MethodPost, "/api/actors/flow-farm/operations/harvest", map[string]interface{}{
		"batch": map[string]interface{}{
			"id":       "h-lot",
			"item_id":  "apples",
			"quantity": map[string]interface{}{"amount": 100, "unit": "kg"},
		},
		"performed_by": "crew-a",
		"timestamp":    "2026-06-01T07:00:00Z",
	})
	if code != http.StatusCreated {
		t.Fatalf("harvest: %d %+v", code, resp)
	}
	var harvest domain.Event
	decodeData(t, resp, &harvest)
	if harvest.EventType != domain.EventTypeHarvest {
		t.Fatalf("expected harvest event, got %q", harvest.EventType)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/flow-farm/operations/split-batch", map[string]interface{}{
		"source_batch_id": "h-lot",
		"outputs": []map[string]interface{}{
			{"batch_id": "h-lot-a", "amount": map[string]interface{}{"amount": 60, "unit": "kg"}},
			{"batch_id": "h-lot-b", "amount": map[string]interface{}{"amount": 40, "unit": "kg"}},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("split: %d %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/flow-farm/batches/h-lot", nil)
	if code != http.StatusOK {
		t.Fatalf("get source: %d", code)
	}
	var source domain.Batch
	decodeData(t, resp, &source)
	if source.Status != domain.BatchStatusDepleted {
		t.Fatalf("expected depleted source, got %q", source.Status)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/flow-farm/traceability/batches/h-lot-a?direction=upstream", nil)
	if code != http.StatusOK {
		t.Fatalf("trace: %d %+v", code, resp)
	}
	var trace query.BatchTrace
	decodeData(t, resp, &trace)
	if len(trace.Upstream) != 1 || trace.Upstream[0].BatchID != "h-lot" {
		t.Fatalf("unexpected upstream: %+v", trace.Upstream)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/flow-farm/traceability/batches/h-lot-a/graph", nil)
	if code != http.StatusOK {
		t.Fatalf("graph: %d %+v", code, resp)
	}
	var graph query.GraphNode
	decodeData(t, resp, &graph)
	if graph.BatchID != "h-lot-a" || len(graph.Inputs) != 1 || graph.Inputs[0].Batch.BatchID != "h-lot" {
		t.Fatalf("unexpected graph: %+v", graph)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/flow-farm/compliance/recall-report/h-lot", nil)
	if code != http.StatusOK {
		t.Fatalf("recall: %d %+v", code, resp)
	}
	var report query.RecallReport
	decodeData(t, resp, &report)
	if report.Scope.TotalHarvested.String() != "100" {
		t.Fatalf("expected 100 harvested, got %s", report.Scope.TotalHarvested.String())
	}
	if !report.Scope.CurrentInventory.IsZero() {
		t.Fatalf("depleted source must hold nothing, got %s", report.Scope.CurrentInventory.String())
	}
	if report.Scope.Processed.String() != "100" {
		t.Fatalf("expected 100 processed, got %s", report.Scope.Processed.String())
	}
	if !report.Scope.MathCheck {
		t.Fatal("expected the recall scope to reconcile")
	}
	if len(report.Downstream) == 0 {
		t.Fatalf("expected the split in the downstream chain, got %+v", report.Downstream)
	}
}

func TestProductionRunAndMergeOverHTTP(t *testing.T) {
	code, resp := doJSON(t, http.MethodPost, "/api/actors/press-mill/operations/harvest", map[string]interface{}{
		"batch": map[string]interface{}{
			"id": "raw-a", "item_id": "apples",
			"quantity": map[string]interface{}{"amount": 10, "unit": "kg"},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("harvest raw-a: %d %+v", code, resp)
	}
	code, resp = doJSON(t, http.MethodPost, "/api/actors/press-mill/operations/harvest", map[string]interface{}{
		"batch": map[string]interface{}{
			"id": "raw-b", "item_id": "apples",
			"quantity": map[string]interface{}{"amount": 10, "unit": "kg"},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("harvest raw-b: %d %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/press-mill/operations/merge-batches", map[string]interface{}{
		"source_batch_ids": []string{"raw-a", "raw-b"},
		"output_batch_id":  "combined",
		"output_quantity":  map[string]interface{}{"amount": 19.5, "unit": "kg"},
	})
	if code != http.StatusCreated {
		t.Fatalf("merge: %d %+v", code, resp)
	}
	code, resp = doJSON(t, http.MethodGet, "/api/actors/press-mill/batches/combined", nil)
	if code != http.StatusOK {
		t.Fatalf("get combined: %d", code)
	}
	var combined domain.Batch
	decodeData(t, resp, &combined)
	if combined.OriginKind != domain.OriginMerged {
		t.Fatalf("expected merged origin, got %q", combined.OriginKind)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/press-mill/operations/production-run", map[string]interface{}{
		"process_id": "pressing-v1",
		"inputs": []map[string]interface{}{
			{"batch_id": "combined", "amount": map[string]interface{}{"amount": 19.5, "unit": "kg"}},
		},
		"outputs": []map[string]interface{}{
			{"batch_id": "juice-run", "item_id": "apple-juice", "amount": map[string]interface{}{"amount": 14, "unit": "L"}},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("production run: %d %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/press-mill/batches/juice-run", nil)
	if code != http.StatusOK {
		t.Fatalf("get juice: %d", code)
	}
	var juice domain.Batch
	decodeData(t, resp, &juice)
	if juice.OriginKind != domain.OriginTransformed || juice.ItemID != "apple-juice" {
		t.Fatalf("unexpected output batch: %+v", juice)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/press-mill/batches/combined", nil)
	if code != http.StatusOK {
		t.Fatalf("get combined after run: %d", code)
	}
	decodeData(t, resp, &combined)
	if combined.Status != domain.BatchStatusDepleted {
		t.Fatalf("expected input depleted, got %q", combined.Status)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/press-mill/operations/dispose-batch", map[string]interface{}{
		"batch_id": "juice-run",
		"reason":   "failed taste panel",
	})
	if code != http.StatusCreated {
		t.Fatalf("dispose: %d %+v", code, resp)
	}
	code, resp = doJSON(t, http.MethodGet, "/api/actors/press-mill/batches/juice-run", nil)
	if code != http.StatusOK {
		t.Fatalf("get disposed: %d", code)
	}
	decodeData(t, resp, &juice)
	if juice.Status != domain.BatchStatusDisposed {
		t.Fatalf("expected disposed, got %q", juice.Status)
	}
}

func TestOperationErrorMapping(t *testing.T) {
	code, resp := doJSON(t, http.MethodPost, "/api/actors/err-farm/operations/split-batch", map[string]interface{}{
		"source_batch_id": "never-was",
		"outputs": []map[string]interface{}{
			{"batch_id": "x", "amount": map[string]interface{}{"amount": 1, "unit": "kg"}},
		},
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing source, got %d %+v", code, resp)
	}
	if resp.Error != "source batch never-was not found" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/err-farm/operations/harvest", map[string]interface{}{
		"batch": map[string]interface{}{"id": "no-item"},
	})
	if code != http.StatusBadRequest || resp.Error != "item_id is required" {
		t.Fatalf("expected item validation, got %d %q", code, resp.Error)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/err-farm/operations/dispose-batch", map[string]interface{}{
		"batch_id": "never-was", "reason": "spoiled",
	})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown batch, got %d %+v", code, resp)
	}

	// Conservation violations surface as 400s with the validator's message.
	code, resp = doJSON(t, http.MethodPost, "/api/actors/err-farm/operations/harvest", map[string]interface{}{
		"batch": map[string]interface{}{
			"id": "tight-lot", "item_id": "apples",
			"quantity": map[string]interface{}{"amount": 10, "unit": "kg"},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("harvest: %d %+v", code, resp)
	}
	code, resp = doJSON(t, http.MethodPost, "/api/actors/err-farm/operations/split-batch", map[string]interface{}{
		"source_batch_id": "tight-lot",
		"outputs": []map[string]interface{}{
			{"batch_id": "a", "amount": map[string]interface{}{"amount": 6, "unit": "kg"}},
			{"batch_id": "b", "amount": map[string]interface{}{"amount": 4.2, "unit": "kg"}},
		},
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for over-tolerance split, got %d %+v", code, resp)
	}
}

func TestEventEndpoints(t *testing.T) {
	code, resp := doJSON(t, http.MethodPost, "/api/actors/ev-farm/events", map[string]interface{}{
		"id":         "ev-x",
		"event_type": "shipping",
		"timestamp":  "2026-06-10T10:00:00Z",
		"inputs": []map[string]interface{}{
			{"batch_id": "some-lot", "amount": map[string]interface{}{"amount": 5, "unit": "kg"}},
		},
		"notes": "Acme Grocers order 442",
	})
	if code != http.StatusCreated {
		t.Fatalf("record: %d %+v", code, resp)
	}

	code, _ = doJSON(t, http.MethodPost, "/api/actors/ev-farm/events", map[string]interface{}{
		"id": "ev-x", "event_type": "shipping",
	})
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate id, got %d", code)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/ev-farm/events", map[string]interface{}{
		"event_type": "teleportation",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodPatch, "/api/actors/ev-farm/events/ev-x", map[string]string{
		"notes": "corrected: order 443",
	})
	if code != http.StatusOK {
		t.Fatalf("patch: %d %+v", code, resp)
	}
	var event domain.Event
	decodeData(t, resp, &event)
	if event.Notes != "corrected: order 443" {
		t.Fatalf("notes not amended: %q", event.Notes)
	}
	if len(event.Inputs) != 1 || event.Inputs[0].BatchID != "some-lot" {
		t.Fatalf("inputs must survive amendment: %+v", event.Inputs)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/ev-farm/events?event_type=shipping", nil)
	if code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	var listing struct {
		Events []domain.Event `json:"events"`
		Count  int            `json:"count"`
	}
	decodeData(t, resp, &listing)
	if listing.Count != 1 || listing.Events[0].ID != "ev-x" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}
