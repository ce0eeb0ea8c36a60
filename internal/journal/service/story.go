package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
	"github.com/wayfarerhq/wayfarer/internal/journal/store"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

var ErrStoryNotFound = errors.New("travel story not found")

// StoryInput carries the caller-editable fields of a travel story.
type StoryInput struct {
	Title           string
	Story           string
	VisitedLocation []string
	ImageURL        string
	VisitedDateMs   int64
}

// StoryService owns the travel story collection. Every operation is
// scoped to the acting owner; a story belonging to someone else is
// indistinguishable from one that does not exist.
type StoryService struct {
	Store  store.Store
	Images *ImageService

	// PlaceholderImageURL is substituted when an update clears the
	// image reference.
	PlaceholderImageURL string

	// Now is the clock used for creation timestamps. Nil means time.Now.
	Now func() time.Time
}

// Create records a new travel story for the owner. All fields are
// required on creation.
func (s *StoryService) Create(ctx context.Context, ownerID string, in StoryInput) (domain.TravelStory, error) {
	if err := validateStoryInput(in, true); err != nil {
		return domain.TravelStory{}, err
	}

	story := domain.TravelStory{
		ID:              idx.New().String(),
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(in.Title),
		Story:           in.Story,
		VisitedLocation: in.VisitedLocation,
		ImageURL:        in.ImageURL,
		VisitedDate:     time.UnixMilli(in.VisitedDateMs).UTC(),
		IsFavourite:     false,
		CreatedAt:       s.now(),
	}

	if err := s.Store.Stories().CreateStory(ctx, story); err != nil {
		slogx.FromContext(ctx).Error("failed to create story", "err", err)
		return domain.TravelStory{}, err
	}

	return story, nil
}

// List returns all of the owner's stories, favourites first.
func (s *StoryService) List(ctx context.Context, ownerID string) ([]domain.TravelStory, error) {
	return s.Store.Stories().ListStories(ctx, ownerID)
}

// Get returns a single story owned by ownerID.
func (s *StoryService) Get(ctx context.Context, ownerID, storyID string) (domain.TravelStory, error) {
	story, err := s.Store.Stories().GetStory(ctx, ownerID, storyID)
	if err != nil {
		return domain.TravelStory{}, mapStoryErr(err)
	}
	return story, nil
}

// Update replaces the editable fields of an existing story. An empty
// image URL falls back to the placeholder; favourite state and
// creation time are untouched.
func (s *StoryService) Update(ctx context.Context, ownerID, storyID string, in StoryInput) (domain.TravelStory, error) {
	if err := validateStoryInput(in, false); err != nil {
		return domain.TravelStory{}, err
	}

	story, err := s.Store.Stories().GetStory(ctx, ownerID, storyID)
	if err != nil {
		return domain.TravelStory{}, mapStoryErr(err)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = s.PlaceholderImageURL
	}

	story.Title = strings.TrimSpace(in.Title)
	story.Story = in.Story
	story.VisitedLocation = in.VisitedLocation
	story.ImageURL = imageURL
	story.VisitedDate = time.UnixMilli(in.VisitedDateMs).UTC()

	if err := s.Store.Stories().UpdateStory(ctx, story); err != nil {
		return domain.TravelStory{}, mapStoryErr(err)
	}

	return story, nil
}

// SetFavourite flips the pin that floats a story to the top of every
// listing.
func (s *StoryService) SetFavourite(ctx context.Context, ownerID, storyID string, favourite bool) (domain.TravelStory, error) {
	story, err := s.Store.Stories().GetStory(ctx, ownerID, storyID)
	if err != nil {
		return domain.TravelStory{}, mapStoryErr(err)
	}

	if err := s.Store.Stories().SetFavourite(ctx, ownerID, storyID, favourite); err != nil {
		return domain.TravelStory{}, mapStoryErr(err)
	}

	story.IsFavourite = favourite
	return story, nil
}

// Delete removes a story and then makes a best-effort attempt to
// delete its stored image. Image cleanup failure never fails the
// delete; it is only logged.
func (s *StoryService) Delete(ctx context.Context, ownerID, storyID string) error {
	story, err := s.Store.Stories().GetStory(ctx, ownerID, storyID)
	if err != nil {
		return mapStoryErr(err)
	}

	if err := s.Store.Stories().DeleteStory(ctx, ownerID, storyID); err != nil {
		return mapStoryErr(err)
	}

	if s.Images != nil && story.ImageURL != "" && story.ImageURL != s.PlaceholderImageURL {
		if err := s.Images.Remove(ctx, story.ImageURL); err != nil {
			slogx.FromContext(ctx).Warn("failed to delete story image",
				"story_id", storyID, "image_url", story.ImageURL, "err", err)
		}
	}

	return nil
}

// Search returns the owner's stories whose title, body or visited
// locations contain the keyword, favourites first.
func (s *StoryService) Search(ctx context.Context, ownerID, keyword string) ([]domain.TravelStory, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrInvalidInput
	}
	return s.Store.Stories().SearchStories(ctx, ownerID, keyword)
}

// FilterByDateRange returns the owner's stories whose visited date
// falls inside the inclusive [startMs, endMs] range.
func (s *StoryService) FilterByDateRange(ctx context.Context, ownerID string, startMs, endMs int64) ([]domain.TravelStory, error) {
	start := time.UnixMilli(startMs).UTC()
	end := time.UnixMilli(endMs).UTC()
	return s.Store.Stories().ListStoriesByDateRange(ctx, ownerID, start, end)
}

func validateStoryInput(in StoryInput, requireImage bool) error {
	if strings.TrimSpace(in.Title) == "" || in.Story == "" || len(in.VisitedLocation) == 0 || in.VisitedDateMs == 0 {
		return ErrInvalidInput
	}
	if requireImage && in.ImageURL == "" {
		return ErrInvalidInput
	}
	return nil
}

func mapStoryErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrStoryNotFound
	}
	return err
}

func (s *StoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
