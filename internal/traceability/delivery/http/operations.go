package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/usecase/command"
	"github.com/openorigin/traceability/kafka"
	"github.com/openorigin/traceability/pkg/logger"
)

// RecordProductionRun handles POST /api/actors/{actor_id}/operations/production-run.
// Input batches are deducted, output batches created or topped up, and the
// processing event recorded, all in one transaction.
func (h *TraceabilityHandler) RecordProductionRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		EventID            string            `json:"event_id"`
		ProcessID          string            `json:"process_id"`
		Inputs             []domain.BatchRef `json:"inputs"`
		Outputs            []domain.BatchRef `json:"outputs"`
		PackagingMaterials []domain.BatchRef `json:"packaging_materials"`
		Waste              []domain.BatchRef `json:"waste"`
		LocationID         string            `json:"location_id"`
		PerformedBy        string            `json:"performed_by"`
		Notes              string            `json:"notes"`
		Timestamp          string            `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	event, err := h.recordProcessingHandler.Handle(r.Context(), command.RecordProcessingCommand{
		EventID:            req.EventID,
		ActorID:            vars["actor_id"],
		ProcessID:          req.ProcessID,
		Inputs:             req.Inputs,
		Outputs:            req.Outputs,
		PackagingMaterials: req.PackagingMaterials,
		Waste:              req.Waste,
		LocationID:         req.LocationID,
		PerformedBy:        req.PerformedBy,
		Notes:              req.Notes,
		Timestamp:          req.Timestamp,
	})
	if err != nil {
		h.respondError(w, r, "record_production_run", err)
		return
	}

	h.eventsRecorded.WithLabelValues(event.EventType).Inc()
	h.publishEventRecorded(r.Context(), event)
	h.invalidateActorCache(r.Context(), event.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Production run recorded successfully",
		Data:    event,
	})
}

// SplitBatch handles POST /api/actors/{actor_id}/operations/split-batch.
// The source batch is depleted and its material distributed across the
// requested child batches.
func (h *TraceabilityHandler) SplitBatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		EventID       string            `json:"event_id"`
		SourceBatchID string            `json:"source_batch_id"`
		Outputs       []domain.BatchRef `json:"outputs"`
		LocationID    string            `json:"location_id"`
		Notes         string            `json:"notes"`
		Timestamp     string            `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	event, err := h.splitBatchHandler.Handle(r.Context(), command.SplitBatchCommand{
		EventID:       req.EventID,
		ActorID:       vars["actor_id"],
		SourceBatchID: req.SourceBatchID,
		Outputs:       req.Outputs,
		LocationID:    req.LocationID,
		Notes:         req.Notes,
		Timestamp:     req.Timestamp,
	})
	if err != nil {
		h.respondError(w, r, "split_batch", err)
		return
	}

	h.eventsRecorded.WithLabelValues(event.EventType).Inc()
	h.publishEventRecorded(r.Context(), event)
	h.invalidateActorCache(r.Context(), event.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Batch split successfully",
		Data:    event,
	})
}

// MergeBatches handles POST /api/actors/{actor_id}/operations/merge-batches
func (h *TraceabilityHandler) MergeBatches(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		EventID        string          `json:"event_id"`
		SourceBatchIDs []string        `json:"source_batch_ids"`
		OutputBatchID  string          `json:"output_batch_id"`
		OutputQuantity domain.Quantity `json:"output_quantity"`
		LocationID     string          `json:"location_id"`
		Notes          string          `json:"notes"`
		Timestamp      string          `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	event, err := h.mergeBatchesHandler.Handle(r.Context(), command.MergeBatchesCommand{
		EventID:        req.EventID,
		ActorID:        vars["actor_id"],
		SourceBatchIDs: req.SourceBatchIDs,
		OutputBatchID:  req.OutputBatchID,
		OutputQuantity: req.OutputQuantity,
		LocationID:     req.LocationID,
		Notes:          req.Notes,
		Timestamp:      req.Timestamp,
	})
	if err != nil {
		h.respondError(w, r, "merge_batches", err)
		return
	}

	h.eventsRecorded.WithLabelValues(event.EventType).Inc()
	h.publishEventRecorded(r.Context(), event)
	h.invalidateActorCache(r.Context(), event.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Batches merged successfully",
		Data:    event,
	})
}

// DisposeBatch handles POST /api/actors/{actor_id}/operations/dispose-batch
func (h *TraceabilityHandler) DisposeBatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		EventID    string `json:"event_id"`
		BatchID    string `json:"batch_id"`
		Reason     string `json:"reason"`
		LocationID string `json:"location_id"`
		Notes      string `json:"notes"`
		Timestamp  string `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	event, err := h.disposeBatchHandler.Handle(r.Context(), command.DisposeBatchCommand{
		EventID:    req.EventID,
		ActorID:    vars["actor_id"],
		BatchID:    req.BatchID,
		Reason:     req.Reason,
		LocationID: req.LocationID,
		Notes:      req.Notes,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		h.respondError(w, r, "dispose_batch", err)
		return
	}

	h.eventsRecorded.WithLabelValues(event.EventType).Inc()
	h.publishEventRecorded(r.Context(), event)
	h.invalidateActorCache(r.Context(), event.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Batch disposed successfully",
		Data:    event,
	})
}

// RecordHarvest handles POST /api/actors/{actor_id}/operations/harvest.
// Creates the harvested batch and its harvest event atomically.
func (h *TraceabilityHandler) RecordHarvest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		EventID     string       `json:"event_id"`
		Batch       domain.Batch `json:"batch"`
		PerformedBy string       `json:"performed_by"`
		Notes       string       `json:"notes"`
		Timestamp   string       `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	event, err := h.recordHarvestHandler.Handle(r.Context(), command.RecordHarvestCommand{
		EventID:     req.EventID,
		ActorID:     vars["actor_id"],
		Batch:       req.Batch,
		PerformedBy: req.PerformedBy,
		Notes:       req.Notes,
		Timestamp:   req.Timestamp,
	})
	if err != nil {
		h.respondError(w, r, "record_harvest", err)
		return
	}

	h.eventsRecorded.WithLabelValues(event.EventType).Inc()
	h.publishEventRecorded(r.Context(), event)
	h.invalidateActorCache(r.Context(), event.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Harvest recorded successfully",
		Data:    event,
	})
}

// publishEventRecorded publishes the recorded event to Kafka (with tracing)
func (h *TraceabilityHandler) publishEventRecorded(ctx context.Context, event *domain.Event) {
	if h.kafkaPublisher == nil {
		return
	}

	msg := kafka.EventRecordedMessage{
		ActorID:        event.ActorID,
		EventID:        event.ID,
		EventType:      event.EventType,
		Timestamp:      event.Timestamp,
		InputBatchIDs:  batchRefIDs(event.Inputs),
		OutputBatchIDs: batchRefIDs(event.Outputs),
	}

	if err := h.kafkaPublisher.PublishEventRecorded(ctx, msg); err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Msg("Failed to publish event-recorded message")
		// Don't fail the request, just log the error
	} else {
		logger.WithContext(ctx).Info().
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Msg("Event-recorded message published successfully")
	}
}

// publishBatchStatusChanged publishes a batch status transition to Kafka
func (h *TraceabilityHandler) publishBatchStatusChanged(ctx context.Context, batch *domain.Batch) {
	if h.kafkaPublisher == nil {
		return
	}

	msg := kafka.BatchStatusChangedMessage{
		ActorID: batch.ActorID,
		BatchID: batch.ID,
		ItemID:  batch.ItemID,
		Status:  batch.Status,
	}

	if err := h.kafkaPublisher.PublishBatchStatusChanged(ctx, msg); err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("batch_id", batch.ID).
			Str("status", batch.Status).
			Msg("Failed to publish batch-status message")
		// Don't fail the request, just log the error
	}
}

// batchRefIDs extracts the batch ids from a slice of references
func batchRefIDs(refs []domain.BatchRef) []string {
	if len(refs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.BatchID)
	}
	return ids
}
