package http

import (
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
)

// maxImageBytes caps a single image upload at 10 MiB.
const maxImageBytes = 10 << 20

// ImagesHandler stores and removes story images.
type ImagesHandler struct {
	ImageService *service.ImageService
}

func (h *ImagesHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := httpx.UserIDFromContext(ctx); !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	imageURL, err := h.ImageService.Upload(ctx, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, journalsdk.UploadResponse{ImageURL: imageURL})
}

func (h *ImagesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := httpx.UserIDFromContext(ctx); !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	imageURL := r.URL.Query().Get("imageUrl")
	if imageURL == "" {
		httpx.WriteError(w, http.StatusBadRequest, "missing imageUrl parameter")
		return
	}

	if err := h.ImageService.Remove(ctx, imageURL); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
