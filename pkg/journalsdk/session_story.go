package journalsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateStory records a new travel story.
func (s *Session) CreateStory(ctx context.Context, in StoryRequest) (TravelStory, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/stories", in)
	if err != nil {
		return TravelStory{}, err
	}

	var out StoryResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return TravelStory{}, err
	}
	return out.Story, nil
}

// ListStories returns all of the user's stories, favourites first.
func (s *Session) ListStories(ctx context.Context) ([]TravelStory, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/stories", nil)
	if err != nil {
		return nil, err
	}

	var out StoriesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Stories, nil
}

// UpdateStory replaces the editable fields of an existing story.
func (s *Session) UpdateStory(ctx context.Context, storyID string, in StoryRequest) (TravelStory, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut, "/v1/stories/"+url.PathEscape(storyID), in)
	if err != nil {
		return TravelStory{}, err
	}

	var out StoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return TravelStory{}, err
	}
	return out.Story, nil
}

// SetFavourite pins or unpins a story.
func (s *Session) SetFavourite(ctx context.Context, storyID string, favourite bool) (TravelStory, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut,
		"/v1/stories/"+url.PathEscape(storyID)+"/favourite",
		favouriteRequest{IsFavourite: favourite})
	if err != nil {
		return TravelStory{}, err
	}

	var out StoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return TravelStory{}, err
	}
	return out.Story, nil
}

// DeleteStory removes a story. The story's image is cleaned up on a
// best-effort basis server side.
func (s *Session) DeleteStory(ctx context.Context, storyID string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodDelete, "/v1/stories/"+url.PathEscape(storyID), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// SearchStories returns stories whose title, body or locations contain
// the query, favourites first.
func (s *Session) SearchStories(ctx context.Context, query string) ([]TravelStory, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet,
		"/v1/stories/search?query="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}

	var out StoriesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Stories, nil
}

// FilterStories returns stories visited inside the inclusive
// [startMs, endMs] range of epoch milliseconds.
func (s *Session) FilterStories(ctx context.Context, startMs, endMs int64) ([]TravelStory, error) {
	q := url.Values{}
	q.Set("startDate", strconv.FormatInt(startMs, 10))
	q.Set("endDate", strconv.FormatInt(endMs, 10))

	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/stories/filter?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var out StoriesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Stories, nil
}
