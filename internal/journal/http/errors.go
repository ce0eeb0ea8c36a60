package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

// writeServiceError maps service errors onto HTTP responses. Anything
// without an explicit mapping is a 500 and gets logged.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, "email already registered")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "user not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, service.ErrStoryNotFound):
		httpx.WriteError(w, http.StatusNotFound, "travel story not found")
	case errors.Is(err, service.ErrUnsupportedImage):
		httpx.WriteError(w, http.StatusBadRequest, "unsupported image type")
	case errors.Is(err, service.ErrImageNotFound):
		httpx.WriteError(w, http.StatusNotFound, "image not found")
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
