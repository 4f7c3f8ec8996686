package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Base
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	VenueID     *uuid.UUID       `json:"venue_id"`
	StartsAt    *time.Time       `json:"starts_at"`
	EndsAt      *time.Time       `json:"ends_at"`
	GalleryID   *uuid.UUID       `json:"gallery_id"`
	Images      []ProcessedImage `json:"images"`
}

type EventFilter struct {
	Limit   int
	Offset  int
	Page    int
	Search  string
	VenueID *uuid.UUID
	From    *time.Time
	To      *time.Time
}
