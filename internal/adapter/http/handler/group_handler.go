package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
)

// GroupHandler handles group-related HTTP requests.
type GroupHandler struct {
	ledger LedgerService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(ledger LedgerService) *GroupHandler {
	return &GroupHandler{ledger: ledger}
}

// Create creates a new group.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	group, err := h.ledger.AddGroup(req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add group", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GroupFromDomain(group))
}

// Update renames a group.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	group, err := h.ledger.EditGroup(id, req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to edit group", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GroupFromDomain(group))
}

// Delete removes a group and every transaction attached to it.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledger.DeleteGroup(id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete group", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns all groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups := h.ledger.ListGroups()

	writeJSON(w, http.StatusOK, dto.ListGroupsResponse{
		Groups: dto.GroupsFromDomain(groups),
		Total:  int64(len(groups)),
	})
}
