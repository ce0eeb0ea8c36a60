package http

import (
	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
	"github.com/wayfarerhq/wayfarer/pkg/journalsdk"
)

func toUserDTO(u domain.User) journalsdk.User {
	return journalsdk.User{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UnixMilli(),
	}
}

func toStoryDTO(s domain.TravelStory) journalsdk.TravelStory {
	return journalsdk.TravelStory{
		ID:              s.ID,
		Title:           s.Title,
		Story:           s.Story,
		VisitedLocation: s.VisitedLocation,
		ImageURL:        s.ImageURL,
		VisitedDate:     s.VisitedDate.UnixMilli(),
		IsFavourite:     s.IsFavourite,
		CreatedAt:       s.CreatedAt.UnixMilli(),
	}
}

func toStoriesDTO(stories []domain.TravelStory) []journalsdk.TravelStory {
	out := make([]journalsdk.TravelStory, 0, len(stories))
	for _, s := range stories {
		out = append(out, toStoryDTO(s))
	}
	return out
}
