package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/repository"
	"github.com/openorigin/traceability/pkg/logger"
)

// The handler registers its Prometheus collectors on construction, so all
// tests share one handler and router and keep themselves apart by actor id.
var testRouter *mux.Router

func TestMain(m *testing.M) {
	logger.Init("traceability-test", false)

	store := repository.NewMemoryStore()
	handler := NewTraceabilityHandler(
		repository.NewMemoryActorRepository(store),
		repository.NewMemoryItemRepository(store),
		repository.NewMemoryLocationRepository(store),
		repository.NewMemoryProcessRepository(store),
		repository.NewMemoryBatchRepository(store),
		repository.NewMemoryEventRepository(store),
		repository.NewMemoryTxManager(store),
		nil, // no broker
		nil, // no cache
	)
	testRouter = mux.NewRouter()
	handler.RegisterRoutes(testRouter)

	os.Exit(m.Run())
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, method, path string, body interface{}) (int, testResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)

	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

func decodeData(t *testing.T, resp testResponse, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("decode data %q: %v", string(resp.Data), err)
	}
}

func TestActorLifecycleOverHTTP(t *testing.T) {
	code, resp := doJSON(t, http.MethodPost, "/api/actors", map[string]string{
		"id": "crud-farm", "name": "Crud Farm", "kind": "producer",
	})
	if code != http.StatusCreated || !resp.Success {
		t.Fatalf("create: %d %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors", map[string]string{
		"id": "crud-farm", "name": "Crud Farm", "kind": "producer",
	})
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", code)
	}
	if resp.Error != "actor crud-farm already exists" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/crud-farm", nil)
	if code != http.StatusOK {
		t.Fatalf("get: %d", code)
	}
	var actor domain.Actor
	decodeData(t, resp, &actor)
	if actor.Name != "Crud Farm" {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	code, _ = doJSON(t, http.MethodPut, "/api/actors/crud-farm", map[string]string{
		"name": "Renamed Farm", "kind": "producer",
	})
	if code != http.StatusOK {
		t.Fatalf("update: %d", code)
	}
	_, resp = doJSON(t, http.MethodGet, "/api/actors/crud-farm", nil)
	decodeData(t, resp, &actor)
	if actor.Name != "Renamed Farm" {
		t.Fatalf("update not applied: %+v", actor)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors", map[string]string{"id": "nameless"})
	if code != http.StatusBadRequest || resp.Error != "name is required" {
		t.Fatalf("expected validation failure, got %d %+v", code, resp)
	}

	code, _ = doJSON(t, http.MethodDelete, "/api/actors/crud-farm", nil)
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, resp = doJSON(t, http.MethodGet, "/api/actors/crud-farm", nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
	if resp.Error != "actor crud-farm not found" {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
}

func TestBatchEndpoints(t *testing.T) {
	code, resp := doJSON(t, http.MethodPost, "/api/actors/batch-farm/batches", map[string]interface{}{
		"id":      "lot-1",
		"item_id": "apples",
		"quantity": map[string]interface{}{
			"amount": 12.5, "unit": "kg",
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("create batch: %d %+v", code, resp)
	}
	var created domain.Batch
	decodeData(t, resp, &created)
	if created.ActorID != "batch-farm" || created.Status != domain.BatchStatusActive {
		t.Fatalf("unexpected batch: %+v", created)
	}
	if created.Quantity == nil || created.Quantity.Amount.String() != "12.5" {
		t.Fatalf("quantity did not survive the round trip: %+v", created.Quantity)
	}

	code, resp = doJSON(t, http.MethodPost, "/api/actors/batch-farm/batches", map[string]interface{}{
		"id": "lot-2", "item_id": "apples", "status": "vaporized",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodPatch, "/api/actors/batch-farm/batches/lot-1/status", map[string]string{
		"status": domain.BatchStatusQuarantined,
	})
	if code != http.StatusOK {
		t.Fatalf("patch status: %d %+v", code, resp)
	}
	var patched domain.Batch
	decodeData(t, resp, &patched)
	if patched.Status != domain.BatchStatusQuarantined {
		t.Fatalf("expected quarantined, got %q", patched.Status)
	}

	code, resp = doJSON(t, http.MethodPatch, "/api/actors/batch-farm/batches/lot-1/quantity", map[string]interface{}{
		"quantity": map[string]interface{}{"amount": 0, "unit": "kg"},
	})
	if code != http.StatusOK {
		t.Fatalf("patch quantity: %d %+v", code, resp)
	}
	decodeData(t, resp, &patched)
	if patched.Status != domain.BatchStatusDepleted {
		t.Fatalf("expected depleted at zero, got %q", patched.Status)
	}

	code, resp = doJSON(t, http.MethodGet, "/api/actors/batch-farm/batches?status=depleted", nil)
	if code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	var listing struct {
		Batches []domain.Batch `json:"batches"`
		Count   int            `json:"count"`
	}
	decodeData(t, resp, &listing)
	if listing.Count != 1 || listing.Batches[0].ID != "lot-1" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}
