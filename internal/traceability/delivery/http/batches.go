package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/usecase/command"
	"github.com/openorigin/traceability/internal/traceability/usecase/query"
)

// CreateBatch handles POST /api/actors/{actor_id}/batches
func (h *TraceabilityHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var batch domain.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	batch.ActorID = vars["actor_id"]

	created, err := h.createBatchHandler.Handle(r.Context(), command.CreateBatchCommand{Batch: batch})
	if err != nil {
		h.respondError(w, r, "create_batch", err)
		return
	}

	h.invalidateActorCache(r.Context(), created.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Batch created successfully",
		Data:    created,
	})
}

// ListBatches handles GET /api/actors/{actor_id}/batches
func (h *TraceabilityHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	batches, err := h.listBatchesHandler.Handle(r.Context(), query.ListBatchesQuery{
		ActorID: vars["actor_id"],
		Status:  r.URL.Query().Get("status"),
		ItemID:  r.URL.Query().Get("item_id"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.respondError(w, r, "list_batches", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"batches": batches,
			"count":   len(batches),
			"limit":   limit,
			"offset":  offset,
		},
	})
}

// GetBatch handles GET /api/actors/{actor_id}/batches/{batch_id}
func (h *TraceabilityHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	batch, err := h.getBatchHandler.Handle(r.Context(), query.GetBatchQuery{
		ActorID: vars["actor_id"],
		ID:      vars["batch_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_batch", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    batch,
	})
}

// UpdateBatchStatus handles PATCH /api/actors/{actor_id}/batches/{batch_id}/status
func (h *TraceabilityHandler) UpdateBatchStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	batch, err := h.updateBatchStatusHandler.Handle(r.Context(), command.UpdateBatchStatusCommand{
		ActorID: vars["actor_id"],
		BatchID: vars["batch_id"],
		Status:  req.Status,
	})
	if err != nil {
		h.respondError(w, r, "update_batch_status", err)
		return
	}

	h.publishBatchStatusChanged(r.Context(), batch)
	h.invalidateActorCache(r.Context(), batch.ActorID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Batch status updated successfully",
		Data:    batch,
	})
}

// UpdateBatchQuantity handles PATCH /api/actors/{actor_id}/batches/{batch_id}/quantity
func (h *TraceabilityHandler) UpdateBatchQuantity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Quantity domain.Quantity `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	batch, err := h.updateBatchQuantityHandler.Handle(r.Context(), command.UpdateBatchQuantityCommand{
		ActorID:  vars["actor_id"],
		BatchID:  vars["batch_id"],
		Quantity: req.Quantity,
	})
	if err != nil {
		h.respondError(w, r, "update_batch_quantity", err)
		return
	}

	// An inventory correction to zero depletes the batch; downstream
	// consumers care about that transition.
	if batch.Status == domain.BatchStatusDepleted {
		h.publishBatchStatusChanged(r.Context(), batch)
	}
	h.invalidateActorCache(r.Context(), batch.ActorID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Batch quantity updated successfully",
		Data:    batch,
	})
}
