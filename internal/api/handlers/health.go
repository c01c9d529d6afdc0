package handlers

import (
	"net/http"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api/dto"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.StatusResponse{Status: dto.StatusOK})
}
