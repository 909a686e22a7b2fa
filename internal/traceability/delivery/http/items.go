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

// CreateItem handles POST /api/actors/{actor_id}/items
func (h *TraceabilityHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var item domain.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	item.ActorID = vars["actor_id"]

	created, err := h.createItemHandler.Handle(r.Context(), command.CreateItemCommand{Item: item})
	if err != nil {
		h.respondError(w, r, "create_item", err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    created,
	})
}

// ListItems handles GET /api/actors/{actor_id}/items
func (h *TraceabilityHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.listItemsHandler.Handle(r.Context(), query.ListItemsQuery{
		ActorID: vars["actor_id"],
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.respondError(w, r, "list_items", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"items":  items,
			"count":  len(items),
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetItem handles GET /api/actors/{actor_id}/items/{item_id}
func (h *TraceabilityHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	item, err := h.getItemHandler.Handle(r.Context(), query.GetItemQuery{
		ActorID: vars["actor_id"],
		ID:      vars["item_id"],
	})
	if err != nil {
		h.respondError(w, r, "get_item", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// UpdateItem handles PUT /api/actors/{actor_id}/items/{item_id}
func (h *TraceabilityHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var item domain.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	item.ActorID = vars["actor_id"]
	item.ID = vars["item_id"]

	updated, err := h.updateItemHandler.Handle(r.Context(), command.UpdateItemCommand{Item: item})
	if err != nil {
		h.respondError(w, r, "update_item", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    updated,
	})
}

// DeleteItem handles DELETE /api/actors/{actor_id}/items/{item_id}
func (h *TraceabilityHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.deleteItemHandler.Handle(r.Context(), command.DeleteItemCommand{
		ActorID: vars["actor_id"],
		ID:      vars["item_id"],
	})
	if err != nil {
		h.respondError(w, r, "delete_item", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}
