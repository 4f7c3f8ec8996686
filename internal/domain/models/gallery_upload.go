package models

import (
	"time"

	"github.com/google/uuid"
)

const VenueGalleriesBucket = "venue-galleries"

// UploadImage одно изображение запроса загрузки
type UploadImage struct {
	FileData     string `json:"file_data"`
	FileName     string `json:"file_name"`
	MimeType     string `json:"mime_type"`
	DisplayOrder *int   `json:"display_order,omitempty"`
	IsPrimary    *bool  `json:"is_primary,omitempty"`
}

type GalleryUpload struct {
	GalleryID *uuid.UUID    `json:"gallery_id,omitempty"`
	VenueID   *uuid.UUID    `json:"venue_id,omitempty"`
	Images    []UploadImage `json:"images"`
}

type UploadedImage struct {
	ID           uuid.UUID `json:"id"`
	Path         string    `json:"path"`
	URL          string    `json:"url"`
	FileName     string    `json:"file_name"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
}

type UploadSummary struct {
	GalleryID      uuid.UUID       `json:"gallery_id"`
	UploadedImages []UploadedImage `json:"uploaded_images"`
	TotalImages    int             `json:"total_images"`
	Results        []ImageResult   `json:"-"`
}

type DeleteSummary struct {
	DeletedImages   int       `json:"deleted_images"`
	RemainingImages int       `json:"remaining_images"`
	GalleryID       uuid.UUID `json:"gallery_id"`
}

// ImageView строка изображения с публичным URL
type ImageView struct {
	GalleryImage
	URL string `json:"url"`
}

type GalleryView struct {
	GalleryID   uuid.UUID   `json:"gallery_id"`
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	VenueID     *uuid.UUID  `json:"venue_id"`
	Images      []ImageView `json:"images"`
	TotalImages int         `json:"total_images"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
