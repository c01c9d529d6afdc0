package handlers

import (
	"errors"
	"net/http"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api/dto"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
)

type ZoneHandler struct {
	Zones *services.ZoneAssignment
}

func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Zones.ListZones(r.Context())
	if err != nil {
		writeInternalError(w, r, "list zones", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListZonesResponse(zones))
}

// Assign sets the worker of an existing zone. The worker name is not validated.
func (h *ZoneHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Zone == nil || req.Worker == nil {
		writeError(w, r, http.StatusBadRequest, "zone and worker are required")
		return
	}

	a, err := h.Zones.Assign(r.Context(), *req.Zone, *req.Worker)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Zone not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, "assign zone", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AssignResponse{Status: dto.StatusOK, Zone: a.Zone, Worker: a.Worker})
}
