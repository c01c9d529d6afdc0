package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api/dto"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
)

const msgClientNotFound = "Client not found"

// ClientHandler exposes client listing, lookup and partial updates.
type ClientHandler struct {
	Registry *services.ClientRegistry
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Registry.List(r.Context())
	if err != nil {
		writeInternalError(w, r, "list clients", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewClientListResponse(clients))
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(w, r)
	if !ok {
		return
	}

	c, err := h.Registry.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, msgClientNotFound)
		return
	}
	if err != nil {
		writeInternalError(w, r, "get client", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewClientResponse(c))
}

// Update applies a partial update; the first update of a client also ends
// its first-service state.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.Registry.Update(r.Context(), id, req.Patch())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, msgClientNotFound)
		return
	case errors.Is(err, domain.ErrInvalidUpdate):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeInternalError(w, r, "update client", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StatusResponse{Status: dto.StatusOK})
}

// clientID parses the {id} path segment. Ids that are not integers cannot
// name any client, so they get the same 404 as unknown ids.
func clientID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, msgClientNotFound)
		return 0, false
	}
	return id, true
}
