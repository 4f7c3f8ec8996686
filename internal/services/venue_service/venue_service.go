package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/geo"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/repository"
	"edge_api/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	BackfillBatchSize = 100

	nearbyRadiusKm   = 30
	distanceRadiusKm = 500
)

// GalleryManager жизненный цикл галереи, которым пользуется владелец
type GalleryManager interface {
	ProcessGalleryData(ctx context.Context, images []string, gc models.GalleryContext) (models.GalleryBatch, error)
	GetGalleryImages(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) []models.ProcessedImage
	UpdateGalleryWithImages(ctx context.Context, galleryID uuid.UUID, newImages []string, deletedIDs []uuid.UUID, gc models.GalleryContext) (models.GalleryBatch, error)
	DeleteGallery(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) error
}

type VenueService struct {
	log       *slog.Logger
	venues    repository.VenueRepository
	galleries GalleryManager
	gc        models.GalleryContext
}

func NewVenueService(log *slog.Logger, venues repository.VenueRepository, galleries GalleryManager) *VenueService {
	return &VenueService{
		log:       log,
		venues:    venues,
		galleries: galleries,
		gc:        models.ContextFor(models.OwnerVenues),
	}
}

// Create создает галерею из gallery_images (возможно пустую), затем площадку
func (s *VenueService) Create(ctx context.Context, req dto.CreateVenueRequest) (models.Venue, models.GalleryBatch, error) {
	const op = "service.VenueService.Create"
	log := s.log.With(slog.String("op", op), slog.String("name", req.Name))

	batch, err := s.galleries.ProcessGalleryData(ctx, req.GalleryImages, s.gc)
	if err != nil {
		log.Error("failed to create venue gallery", sl.Err(err))
		return models.Venue{}, models.GalleryBatch{}, fmt.Errorf("failed to create venue gallery: %w", err)
	}

	galleryID := batch.GalleryID
	venue := models.Venue{
		Name:              req.Name,
		Description:       req.Description,
		IsActive:          req.IsActive,
		LocationLatitude:  req.LocationLatitude,
		LocationLongitude: req.LocationLongitude,
		VenueCategoryID:   req.VenueCategoryID,
		GalleryID:         &galleryID,
	}
	if venue.HasCoordinates() {
		cell := geo.Cell(*venue.LocationLatitude, *venue.LocationLongitude)
		venue.H3 = &cell
	}

	created, err := s.venues.CreateVenue(ctx, venue)
	if err != nil {
		log.Error("failed to create venue", sl.Err(err))
		s.dropGallery(ctx, log, galleryID)
		return models.Venue{}, models.GalleryBatch{}, fmt.Errorf("failed to create venue: %w", err)
	}

	created.Images = batch.Images
	if created.Images == nil {
		created.Images = []models.ProcessedImage{}
	}

	log.Info("venue created", slog.String("venue_id", created.ID.String()))

	return created, batch, nil
}

func (s *VenueService) Get(ctx context.Context, id uuid.UUID) (models.Venue, error) {
	const op = "service.VenueService.Get"
	log := s.log.With(slog.String("op", op), slog.String("venue_id", id.String()))

	venue, err := s.venues.GetVenueByID(ctx, id)
	if err != nil {
		log.Error("failed to get venue", sl.Err(err))
		return models.Venue{}, fmt.Errorf("failed to get venue: %w", err)
	}

	return s.withImages(ctx, venue), nil
}

// List с пространственным фильтром: bbox всегда, ячейки H3 только для малых радиусов
func (s *VenueService) List(ctx context.Context, f models.VenueFilter) ([]models.Venue, models.Pagination, error) {
	const op = "service.VenueService.List"
	log := s.log.With(slog.String("op", op))

	f.Limit, f.Offset, f.Page = models.PageWindow(f.Limit, f.Offset, f.Page, defaultLimit, maxLimit)
	f = spatialFilter(f)

	if f.BBox != nil {
		log.Debug("spatial filter",
			slog.Float64("radius_km", f.RadiusKm),
			slog.Int("h3_cells", len(f.H3Cells)),
		)
	}

	venues, total, err := s.venues.ListVenues(ctx, f)
	if err != nil {
		log.Error("failed to list venues", sl.Err(err))
		return nil, models.Pagination{}, fmt.Errorf("failed to list venues: %w", err)
	}

	for i := range venues {
		venues[i] = s.withImages(ctx, venues[i])
	}

	return venues, models.NewPagination(f.Page, f.Limit, total), nil
}

// Update частичное обновление. H3 пересчитывается по итоговым координатам,
// галерея создается, если ее еще нет.
func (s *VenueService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVenueRequest) (models.Venue, models.GalleryBatch, error) {
	const op = "service.VenueService.Update"
	log := s.log.With(slog.String("op", op), slog.String("venue_id", id.String()))

	current, err := s.venues.GetVenueByID(ctx, id)
	if err != nil {
		log.Error("failed to get venue", sl.Err(err))
		return models.Venue{}, models.GalleryBatch{}, fmt.Errorf("failed to get venue: %w", err)
	}

	updates := req.Updates()

	if req.LocationLatitude != nil || req.LocationLongitude != nil {
		lat, lng := current.LocationLatitude, current.LocationLongitude
		if req.LocationLatitude != nil {
			lat = req.LocationLatitude
		}
		if req.LocationLongitude != nil {
			lng = req.LocationLongitude
		}
		if lat != nil && lng != nil {
			updates["h3"] = geo.Cell(*lat, *lng)
		}
	}

	var (
		batch   models.GalleryBatch
		created bool
	)
	if req.GalleryChanged() {
		if current.GalleryID == nil {
			batch, err = s.galleries.ProcessGalleryData(ctx, req.GalleryImages, s.gc)
			if err == nil {
				updates["gallery_id"] = batch.GalleryID
				created = true
			}
		} else {
			batch, err = s.galleries.UpdateGalleryWithImages(ctx, *current.GalleryID, req.GalleryImages, req.DeletedImages, s.gc)
		}
		if err != nil {
			log.Error("failed to update venue gallery", sl.Err(err))
			return models.Venue{}, models.GalleryBatch{}, fmt.Errorf("failed to update venue gallery: %w", err)
		}
	}

	updated := current
	if len(updates) > 0 {
		updated, err = s.venues.UpdateVenueFields(ctx, id, updates)
		if err != nil {
			log.Error("failed to update venue", sl.Err(err))
			if created {
				s.dropGallery(ctx, log, batch.GalleryID)
			}
			return models.Venue{}, models.GalleryBatch{}, fmt.Errorf("failed to update venue: %w", err)
		}
	}

	if req.GalleryChanged() {
		updated.Images = batch.Images
	} else {
		updated = s.withImages(ctx, updated)
	}
	if updated.Images == nil {
		updated.Images = []models.ProcessedImage{}
	}

	log.Info("venue updated")

	return updated, batch, nil
}

// Delete удаляет галерею и мягко удаляет площадку. Ошибка удаления
// галереи не мешает удалению площадки.
func (s *VenueService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.VenueService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("venue_id", id.String()))

	venue, err := s.venues.GetVenueByID(ctx, id)
	if err != nil {
		log.Error("failed to get venue", sl.Err(err))
		return fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.GalleryID != nil {
		if err := s.galleries.DeleteGallery(ctx, *venue.GalleryID, s.gc); err != nil {
			log.Warn("failed to delete venue gallery", slog.String("gallery_id", venue.GalleryID.String()), sl.Err(err))
		}
	}

	if err := s.venues.SoftDeleteVenue(ctx, id); err != nil {
		log.Error("failed to delete venue", sl.Err(err))
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	log.Info("venue deleted")

	return nil
}

// BackfillH3 проставляет h3 одной пачке площадок с координатами и без ячейки
func (s *VenueService) BackfillH3(ctx context.Context) (models.H3BackfillResult, error) {
	const op = "service.VenueService.BackfillH3"
	log := s.log.With(slog.String("op", op))

	venues, err := s.venues.ListVenuesMissingH3(ctx, BackfillBatchSize)
	if err != nil {
		log.Error("failed to list venues without h3", sl.Err(err))
		return models.H3BackfillResult{}, fmt.Errorf("failed to list venues without h3: %w", err)
	}

	var res models.H3BackfillResult
	for _, v := range venues {
		if !v.HasCoordinates() {
			continue
		}

		cell := geo.Cell(*v.LocationLatitude, *v.LocationLongitude)
		if err := s.venues.SetVenueH3(ctx, v.ID, cell); err != nil {
			log.Warn("failed to set venue h3", slog.String("venue_id", v.ID.String()), sl.Err(err))
			res.Errors++
			continue
		}
		res.Updated++
	}

	log.Info("h3 backfill finished", slog.Int("updated", res.Updated), slog.Int("errors", res.Errors))

	return res, nil
}

func (s *VenueService) H3Stats(ctx context.Context) (models.H3CoverageStats, error) {
	const op = "service.VenueService.H3Stats"
	log := s.log.With(slog.String("op", op))

	stats, err := s.venues.H3Stats(ctx)
	if err != nil {
		log.Error("failed to read h3 stats", sl.Err(err))
		return models.H3CoverageStats{}, fmt.Errorf("failed to read h3 stats: %w", err)
	}

	stats.CoveragePercentage = coverage(stats.VenuesWithH3, stats.VenuesWithCoordinates)

	return stats, nil
}

func (s *VenueService) withImages(ctx context.Context, v models.Venue) models.Venue {
	if v.GalleryID == nil {
		v.Images = []models.ProcessedImage{}
		return v
	}

	v.Images = s.galleries.GetGalleryImages(ctx, *v.GalleryID, s.gc)
	return v
}

func spatialFilter(f models.VenueFilter) models.VenueFilter {
	if !f.Spatial() {
		return f
	}

	if f.RadiusKm <= 0 {
		f.RadiusKm = distanceRadiusKm
		if f.Nearby {
			f.RadiusKm = nearbyRadiusKm
		}
	}

	lat, lng := *f.Latitude, *f.Longitude
	radiusM := f.RadiusKm * 1000

	bbox := geo.BoundingBox(lat, lng, radiusM)
	f.BBox = &bbox

	if !geo.TooLargeForH3(radiusM) {
		f.H3Cells = geo.Disk(lat, lng, geo.KForRadius(radiusM))
	}

	return f
}

// coverage доля в процентах с двумя знаками
func coverage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

// dropGallery удаляет галерею, не привязанную к строке venues
func (s *VenueService) dropGallery(ctx context.Context, log *slog.Logger, galleryID uuid.UUID) {
	if err := s.galleries.DeleteGallery(ctx, galleryID, s.gc); err != nil {
		log.Warn("failed to clean up venue gallery", slog.String("gallery_id", galleryID.String()), sl.Err(err))
	}
}
