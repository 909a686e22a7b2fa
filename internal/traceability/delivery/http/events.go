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

// RecordEvent handles POST /api/actors/{actor_id}/events. The event is
// appended as written; inputs and outputs are not interpreted. Engine
// semantics live under /operations.
func (h *TraceabilityHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	event.ActorID = vars["actor_id"]

	created, err := h.recordEventHandler.Handle(r.Context(), command.RecordEventCommand{Event: event})
	if err != nil {
		h.respondError(w, r, "record_event", err)
		return
	}

	h.eventsRecorded.WithLabelValues(created.EventType).Inc()
	h.publishEventRecorded(r.Context(), created)
	h.invalidateActorCache(r.Context(), created.ActorID)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Event recorded successfully",
		Data:    created,
	})
}

// ListEvents handles GET /api/actors/{actor_id}/events
func (h *TraceabilityHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	events, err := h.listEventsHandler.Handle(r.Context(), query.ListEventsQuery{
		ActorID:   vars["actor_id"],
		EventType: r.URL.Query().Get("event_type"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		h.respondError(w, r, "list_events", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"events": events,
			"count":  len(events),
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetEvent handles GET /api/actors/{actor_id}/events/{event_id}
func (h *TraceabilityHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	event, err := h.getEventHandler.Handle(r.Context(), query.GetEventQuery{
		ActorID: vars["actor_id"],
		ID:      vars["event_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_event", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    event,
	})
}

// UpdateEvent handles PATCH /api/actors/{actor_id}/events/{event_id}.
// Only notes and timestamp may be amended; the recorded inputs and
// outputs are immutable.
func (h *TraceabilityHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Notes     string `json:"notes"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	event, err := h.updateEventHandler.Handle(r.Context(), command.UpdateEventCommand{
		ActorID:   vars["actor_id"],
		EventID:   vars["event_id"],
		Notes:     req.Notes,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		h.respondError(w, r, "update_event", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Event updated successfully",
		Data:    event,
	})
}
