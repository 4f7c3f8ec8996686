package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title         string     `json:"title" validate:"required"`
	Description   *string    `json:"description"`
	VenueID       *uuid.UUID `json:"venue_id"`
	StartsAt      *time.Time `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at"`
	GalleryImages []string   `json:"gallery_images"`
}

type UpdateEventRequest struct {
	Title         *string     `json:"title" validate:"omitempty,min=1"`
	Description   *string     `json:"description"`
	VenueID       *uuid.UUID  `json:"venue_id"`
	StartsAt      *time.Time  `json:"starts_at"`
	EndsAt        *time.Time  `json:"ends_at"`
	GalleryImages []string    `json:"gallery_images"`
	DeletedImages []uuid.UUID `json:"deleted_images"`
}

func (r UpdateEventRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}

	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.VenueID != nil {
		updates["venue_id"] = *r.VenueID
	}
	if r.StartsAt != nil {
		updates["starts_at"] = *r.StartsAt
	}
	if r.EndsAt != nil {
		updates["ends_at"] = *r.EndsAt
	}

	return updates
}

func (r UpdateEventRequest) GalleryChanged() bool {
	return len(r.GalleryImages) > 0 || len(r.DeletedImages) > 0
}
