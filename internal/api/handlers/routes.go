package handlers

import (
	"net/http"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api/dto"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
)

type RouteHandler struct {
	Planner *services.RoutePlanner
}

// Route returns the worker's clients ordered by distance from the depot.
// Workers without zones get an empty array.
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	route, err := h.Planner.Route(r.Context(), r.PathValue("worker"))
	if err != nil {
		writeInternalError(w, r, "build route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewClientListResponse(route))
}
