package http

import (
	"net/http"
	"strconv"

	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
)

func (h *StoriesHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	stories, err := h.StoryService.Search(ctx, userID, r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, journalsdk.StoriesResponse{Stories: toStoriesDTO(stories)})
}

func (h *StoriesHandler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid access token")
		return
	}

	q := r.URL.Query()
	startMs, err := strconv.ParseInt(q.Get("startDate"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	endMs, err := strconv.ParseInt(q.Get("endDate"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	stories, err := h.StoryService.FilterByDateRange(ctx, userID, startMs, endMs)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, journalsdk.StoriesResponse{Stories: toStoriesDTO(stories)})
}
