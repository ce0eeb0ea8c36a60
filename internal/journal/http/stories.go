package http

import (
	"encoding/json"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
)

// StoriesHandler serves the owner-scoped travel story collection.
type StoriesHandler struct {
	StoryService *service.StoryService
}

type storyRequest struct {
	Title           string   `json:"title"`
	Story           string   `json:"story"`
	VisitedLocation []string `json:"visitedLocation"`
	ImageURL        string   `json:"imageUrl"`
	VisitedDate     int64    `json:"visitedDate"`
}

func (r storyRequest) toInput() service.StoryInput {
	return service.StoryInput{
		Title:           r.Title,
		Story:           r.Story,
		VisitedLocation: r.VisitedLocation,
		ImageURL:        r.ImageURL,
		VisitedDateMs:   r.VisitedDate,
	}
}

// storyID validates the {id} path value. Story IDs are ULIDs, so a
// malformed value can be rejected without a store round-trip.
func storyID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "travel story not found")
		return "", false
	}
	return id.String(), true
}

func (h *StoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.StoryService.Create(ctx, userID, req.toInput())
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, journalsdk.StoryResponse{Story: toStoryDTO(story)})
}

func (h *StoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	stories, err := h.StoryService.List(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, journalsdk.StoriesResponse{Stories: toStoriesDTO(stories)})
}

func (h *StoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	id, ok := storyID(w, r)
	if !ok {
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.StoryService.Update(ctx, userID, id, req.toInput())
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, journalsdk.StoryResponse{Story: toStoryDTO(story)})
}

func (h *StoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	id, ok := storyID(w, r)
	if !ok {
		return
	}

	if err := h.StoryService.Delete(ctx, userID, id); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StoriesHandler) HandleFavourite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	id, ok := storyID(w, r)
	if !ok {
		return
	}

	var req struct {
		IsFavourite bool `json:"isFavourite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.StoryService.SetFavourite(ctx, userID, id, req.IsFavourite)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, journalsdk.StoryResponse{Story: toStoryDTO(story)})
}
