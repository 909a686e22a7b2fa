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

// CreateProcess handles POST /api/actors/{actor_id}/processes
func (h *TraceabilityHandler) CreateProcess(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var process domain.Process
	if err := json.NewDecoder(r.Body).Decode(&process); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	process.ActorID = vars["actor_id"]

	created, err := h.createProcessHandler.Handle(r.Context(), command.CreateProcessCommand{Process: process})
	if err != nil {
		h.respondError(w, r, "create_process", err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Process created successfully",
		Data:    created,
	})
}

// ListProcesses handles GET /api/actors/{actor_id}/processes
func (h *TraceabilityHandler) ListProcesses(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	processes, err := h.listProcessesHandler.Handle(r.Context(), query.ListProcessesQuery{
		ActorID: vars["actor_id"],
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.respondError(w, r, "list_processes", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"processes": processes,
			"count":     len(processes),
			"limit":     limit,
			"offset":    offset,
		},
	})
}

// GetProcess handles GET /api/actors/{actor_id}/processes/{process_id}
func (h *TraceabilityHandler) GetProcess(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	process, err := h.getProcessHandler.Handle(r.Context(), query.GetProcessQuery{
		ActorID: vars["actor_id"],
		ID:      vars["process_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_process", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    process,
	})
}

// UpdateProcess handles PUT /api/actors/{actor_id}/processes/{process_id}
func (h *TraceabilityHandler) UpdateProcess(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var process domain.Process
	if err := json.NewDecoder(r.Body).Decode(&process); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	process.ActorID = vars["actor_id"]
	process.ID = vars["process_id"]

	updated, err := h.updateProcessHandler.Handle(r.Context(), command.UpdateProcessCommand{Process: process})
	if err != nil {
		h.respondError(w, r, "update_process", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Process updated successfully",
		Data:    updated,
	})
}

// DeleteProcess handles DELETE /api/actors/{actor_id}/processes/{process_id}
func (h *TraceabilityHandler) DeleteProcess(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.deleteProcessHandler.Handle(r.Context(), command.DeleteProcessCommand{
		ActorID: vars["actor_id"],
		ID:      vars["process_id"],
	})
	if err != nil {
		h.respondError(w, r, "delete_process", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Process deleted successfully",
	})
}
