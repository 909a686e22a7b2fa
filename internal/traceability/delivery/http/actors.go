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

// CreateActor handles POST /api/actors
func (h *TraceabilityHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var actor domain.Actor
	if err := json.NewDecoder(r.Body).Decode(&actor); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	created, err := h.createActorHandler.Handle(r.Context(), command.CreateActorCommand{Actor: actor})
	if err != nil {
		h.respondError(w, r, "create_actor", err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Actor created successfully",
		Data:    created,
	})
}

// ListActors handles GET /api/actors
func (h *TraceabilityHandler) ListActors(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	actors, err := h.listActorsHandler.Handle(r.Context(), query.ListActorsQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondError(w, r, "list_actors", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"actors": actors,
			"count":  len(actors),
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetActor handles GET /api/actors/{actor_id}
func (h *TraceabilityHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	actor, err := h.getActorHandler.Handle(r.Context(), query.GetActorQuery{ID: vars["actor_id"]})
	if err != nil {
		h.respondError(w, r, "get_actor", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    actor,
	})
}

// UpdateActor handles PUT /api/actors/{actor_id}
func (h *TraceabilityHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var actor domain.Actor
	if err := json.NewDecoder(r.Body).Decode(&actor); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	actor.ID = vars["actor_id"]

	updated, err := h.updateActorHandler.Handle(r.Context(), command.UpdateActorCommand{Actor: actor})
	if err != nil {
		h.respondError(w, r, "update_actor", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Actor updated successfully",
		Data:    updated,
	})
}

// DeleteActor handles DELETE /api/actors/{actor_id}. Everything the actor
// owns goes with it in one transaction.
func (h *TraceabilityHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	actorID := vars["actor_id"]

	if err := h.deleteActorHandler.Handle(r.Context(), command.DeleteActorCommand{ID: actorID}); err != nil {
		h.respondError(w, r, "delete_actor", err)
		return
	}

	h.invalidateActorCache(r.Context(), actorID)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Actor deleted successfully",
	})
}
