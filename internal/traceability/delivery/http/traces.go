package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/openorigin/traceability/internal/traceability/usecase/query"
)

// GetBatchTrace handles GET /api/actors/{actor_id}/traceability/batches/{batch_id}.
// The direction query parameter selects upstream, downstream, or both
// (the default).
func (h *TraceabilityHandler) GetBatchTrace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	direction := r.URL.Query().Get("direction")
	if direction == "" {
		direction = query.DirectionBoth
	}

	trace, err := h.traceBatchHandler.Handle(r.Context(), query.TraceBatchQuery{
		ActorID:   vars["actor_id"],
		BatchID:   vars["batch_id"],
		Direction: direction,
	})
	if err != nil {
		h.respondError(w, r, "get_batch_trace", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    trace,
	})
}

// GetTraceGraph handles GET /api/actors/{actor_id}/traceability/batches/{batch_id}/graph
func (h *TraceabilityHandler) GetTraceGraph(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	maxDepth, _ := strconv.Atoi(r.URL.Query().Get("max_depth"))

	graph, err := h.traceGraphHandler.Handle(r.Context(), query.TraceGraphQuery{
		ActorID:  vars["actor_id"],
		BatchID:  vars["batch_id"],
		MaxDepth: maxDepth,
	})
	if err != nil {
		h.respondError(w, r, "get_trace_graph", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    graph,
	})
}

// GetItemSummary handles GET /api/actors/{actor_id}/traceability/items/{item_id}/summary
func (h *TraceabilityHandler) GetItemSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	summary, err := h.itemSummaryHandler.Handle(r.Context(), query.ItemSummaryQuery{
		ActorID: vars["actor_id"],
		ItemID:  vars["item_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_item_summary", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// GetRecallReport handles GET /api/actors/{actor_id}/compliance/recall-report/{batch_id}
func (h *TraceabilityHandler) GetRecallReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	report, err := h.recallReportHandler.Handle(r.Context(), query.RecallReportQuery{
		ActorID: vars["actor_id"],
		BatchID: vars["batch_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_recall_report", err)
		return
	}

	h.recallReports.Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    report,
	})
}
