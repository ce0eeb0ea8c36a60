package http

import (
	"errors"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
)

// MeHandler returns the authenticated user's account details. A valid
// token whose user no longer exists reads as unauthorized.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok || userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
			return
		}
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, journalsdk.UserResponse{User: toUserDTO(user)})
}
