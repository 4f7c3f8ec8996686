package models

import (
	"github.com/google/uuid"
)

type Venue struct {
	Base
	Name              string           `json:"name"`
	Description       *string          `json:"description"`
	IsActive          *bool            `json:"is_active"`
	LocationLatitude  *float64         `json:"location_latitude"`
	LocationLongitude *float64         `json:"location_longitude"`
	H3                *string          `json:"h3"`
	VenueCategoryID   []string         `json:"venue_category_id"`
	GalleryID         *uuid.UUID       `json:"gallery_id"`
	Images            []ProcessedImage `json:"images"`
}

// HasCoordinates обе координаты заданы
func (v Venue) HasCoordinates() bool {
	return v.LocationLatitude != nil && v.LocationLongitude != nil
}

type VenueFilter struct {
	Limit           int
	Offset          int
	Page            int
	Search          string
	IsActive        *bool
	VenueCategoryID []string

	Nearby    bool
	OrderBy   string
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64

	// заполняются сервисом перед обращением к хранилищу
	BBox    *BBox
	H3Cells []string
}

// Spatial нужен ли пространственный фильтр
func (f VenueFilter) Spatial() bool {
	return (f.Nearby || f.OrderBy == "distance") && f.Latitude != nil && f.Longitude != nil
}

// BBox прямоугольник в градусах
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

type H3BackfillResult struct {
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

type H3CoverageStats struct {
	TotalVenues           int     `json:"total_venues"`
	VenuesWithCoordinates int     `json:"venues_with_coordinates"`
	VenuesWithH3          int     `json:"venues_with_h3"`
	CoveragePercentage    float64 `json:"coverage_percentage"`
}
