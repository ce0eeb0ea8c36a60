package http

import (
	"encoding/json"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

// RegisterHandler creates a new account and immediately issues an
// access token, so a fresh signup lands already logged in.
type RegisterHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Register(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	token, err := h.TokenService.Issue(user.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to issue token", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, journalsdk.AuthResponse{
		User:        toUserDTO(user),
		AccessToken: token,
	})
}

// LoginHandler exchanges an email/password pair for an access token.
type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	token, err := h.TokenService.Issue(user.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to issue token", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, journalsdk.AuthResponse{
		User:        toUserDTO(user),
		AccessToken: token,
	})
}
