package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api/dto"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
	"github.com/google/uuid"
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// PhotoHandler stores a bin photo and records its URL on the client.
type PhotoHandler struct {
	Registry *services.ClientRegistry
	Store    ports.PhotoStore
}

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(w, r)
	if !ok {
		return
	}

	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	ext, supported := photoExtensions[strings.ToLower(contentType)]
	if err != nil || !supported {
		writeError(w, r, http.StatusUnsupportedMediaType, "photo must be jpeg, png, webp or heic")
		return
	}

	// Check the client first so unknown ids never leave orphaned objects.
	if _, err := h.Registry.Get(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, msgClientNotFound)
			return
		}
		writeInternalError(w, r, "upload photo", err)
		return
	}

	key := fmt.Sprintf("clients/%d/%s%s", id, uuid.NewString(), ext)
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	url, err := h.Store.UploadPhoto(r.Context(), key, contentType, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "photo too large")
			return
		}
		writeInternalError(w, r, "upload photo", err)
		return
	}

	_, err = h.Registry.Update(r.Context(), id, domain.ClientPatch{PhotoURL: &url})
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, msgClientNotFound)
		return
	}
	if err != nil {
		writeInternalError(w, r, "record photo", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PhotoResponse{Status: dto.StatusOK, PhotoURL: url})
}
