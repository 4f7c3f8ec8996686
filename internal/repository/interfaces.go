package repository

import (
	"context"

	"edge_api/internal/domain/models"

	"github.com/google/uuid"
)

type BannerRepository interface {
	CreateBanner(ctx context.Context, banner models.Banner) (models.Banner, error)
	GetBannerByID(ctx context.Context, id uuid.UUID) (models.Banner, error)
	UpdateBannerFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Banner, error)
	SoftDeleteBanner(ctx context.Context, id uuid.UUID) error
	ListBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, int, error)
	ReadCounter(ctx context.Context, id uuid.UUID, counter models.CounterName) (models.Banner, models.CounterState, error)
	CompareAndSwapCounter(ctx context.Context, id uuid.UUID, counter models.CounterName, expected *int64, next int64, deactivate bool) (models.Banner, bool, error)
}

type GalleryRepository interface {
	CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, error)
	GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	SoftDeleteGallery(ctx context.Context, id uuid.UUID) error
}

type GalleryImageRepository interface {
	CreateImage(ctx context.Context, image models.GalleryImage) (models.GalleryImage, error)
	GetImageByID(ctx context.Context, id uuid.UUID) (models.GalleryImage, error)
	ListByGallery(ctx context.Context, galleryID uuid.UUID) ([]models.GalleryImage, error)
	ListByIDs(ctx context.Context, galleryID uuid.UUID, ids []uuid.UUID) ([]models.GalleryImage, error)
	CountByGallery(ctx context.Context, galleryID uuid.UUID, excluding []uuid.UUID) (int, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	DeleteByGalleryID(ctx context.Context, galleryID uuid.UUID) error
	SoftDeleteImages(ctx context.Context, ids []uuid.UUID) error
	ClearPrimary(ctx context.Context, galleryID uuid.UUID) error
}

type GalleryCache interface {
	GetImages(ctx context.Context, bucket string, galleryID uuid.UUID) ([]models.ProcessedImage, bool, error)
	SaveImages(ctx context.Context, bucket string, galleryID uuid.UUID, images []models.ProcessedImage) error
	Invalidate(ctx context.Context, bucket string, galleryID uuid.UUID) error
}

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	GetVenueByID(ctx context.Context, id uuid.UUID) (models.Venue, error)
	UpdateVenueFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Venue, error)
	SoftDeleteVenue(ctx context.Context, id uuid.UUID) error
	ListVenues(ctx context.Context, f models.VenueFilter) ([]models.Venue, int, error)
	ListVenuesMissingH3(ctx context.Context, limit int) ([]models.Venue, error)
	SetVenueH3(ctx context.Context, id uuid.UUID, cell string) error
	H3Stats(ctx context.Context) (models.H3CoverageStats, error)
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error)
	UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Event, error)
	SoftDeleteEvent(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context, f models.EventFilter) ([]models.Event, int, error)
}
