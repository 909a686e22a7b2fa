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

// CreateLocation handles POST /api/actors/{actor_id}/locations
func (h *TraceabilityHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var location domain.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	location.ActorID = vars["actor_id"]

	created, err := h.createLocationHandler.Handle(r.Context(), command.CreateLocationCommand{Location: location})
	if err != nil {
		h.respondError(w, r, "create_location", err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Location created successfully",
		Data:    created,
	})
}

// ListLocations handles GET /api/actors/{actor_id}/locations
func (h *TraceabilityHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	locations, err := h.listLocationsHandler.Handle(r.Context(), query.ListLocationsQuery{
		ActorID: vars["actor_id"],
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.respondError(w, r, "list_locations", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"locations": locations,
			"count":     len(locations),
			"limit":     limit,
			"offset":    offset,
		},
	})
}

// GetLocation handles GET /api/actors/{actor_id}/locations/{location_id}
func (h *TraceabilityHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	location, err := h.getLocationHandler.Handle(r.Context(), query.GetLocationQuery{
		ActorID: vars["actor_id"],
		ID:      vars["location_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_location", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    location,
	})
}

// UpdateLocation handles PUT /api/actors/{actor_id}/locations/{location_id}
func (h *TraceabilityHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var location domain.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	location.ActorID = vars["actor_id"]
	location.ID = vars["location_id"]

	updated, err := h.updateLocationHandler.Handle(r.Context(), command.UpdateLocationCommand{Location: location})
	if err != nil {
		h.respondError(w, r, "update_location", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Location updated successfully",
		Data:    updated,
	})
}

// DeleteLocation handles DELETE /api/actors/{actor_id}/locations/{location_id}
func (h *TraceabilityHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.deleteLocationHandler.Handle(r.Context(), command.DeleteLocationCommand{
		ActorID: vars["actor_id"],
		ID:      vars["location_id"],
	})
	if err != nil {
		h.respondError(w, r, "delete_location", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Location deleted successfully",
	})
}
