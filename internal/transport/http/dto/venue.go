package dto

import (
	"github.com/google/uuid"
)

type CreateVenueRequest struct {
	Name              string   `json:"name" validate:"required"`
	Description       *string  `json:"description"`
	IsActive          *bool    `json:"is_active"`
	LocationLatitude  *float64 `json:"location_latitude" validate:"omitempty,latitude"`
	LocationLongitude *float64 `json:"location_longitude" validate:"omitempty,longitude"`
	VenueCategoryID   []string `json:"venue_category_id"`
	GalleryImages     []string `json:"gallery_images"` // base64 или data-URI
}

type UpdateVenueRequest struct {
	Name              *string     `json:"name" validate:"omitempty,min=1"`
	Description       *string     `json:"description"`
	IsActive          *bool       `json:"is_active"`
	LocationLatitude  *float64    `json:"location_latitude" validate:"omitempty,latitude"`
	LocationLongitude *float64    `json:"location_longitude" validate:"omitempty,longitude"`
	VenueCategoryID   []string    `json:"venue_category_id"`
	GalleryImages     []string    `json:"gallery_images"`
	DeletedImages     []uuid.UUID `json:"deleted_images"` // id изображений галереи
}

// Updates заданные поля площадки без полей галереи
func (r UpdateVenueRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}

	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	if r.LocationLatitude != nil {
		updates["location_latitude"] = *r.LocationLatitude
	}
	if r.LocationLongitude != nil {
		updates["location_longitude"] = *r.LocationLongitude
	}
	if r.VenueCategoryID != nil {
		updates["venue_category_id"] = r.VenueCategoryID
	}

	return updates
}

// GalleryChanged нужно ли трогать галерею
func (r UpdateVenueRequest) GalleryChanged() bool {
	return len(r.GalleryImages) > 0 || len(r.DeletedImages) > 0
}
