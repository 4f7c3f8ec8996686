package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/repository"
	"edge_api/internal/storage"
	"edge_api/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type GalleryManager interface {
	ProcessGalleryData(ctx context.Context, images []string, gc models.GalleryContext) (models.GalleryBatch, error)
	GetGalleryImages(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) []models.ProcessedImage
	UpdateGalleryWithImages(ctx context.Context, galleryID uuid.UUID, newImages []string, deletedIDs []uuid.UUID, gc models.GalleryContext) (models.GalleryBatch, error)
	DeleteGallery(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) error
}

// EventService события с галереей в контексте events
type EventService struct {
	log       *slog.Logger
	events    repository.EventRepository
	galleries GalleryManager
	gc        models.GalleryContext
}

func NewEventService(log *slog.Logger, events repository.EventRepository, galleries GalleryManager) *EventService {
	return &EventService{
		log:       log,
		events:    events,
		galleries: galleries,
		gc:        models.ContextFor(models.OwnerEvents),
	}
}

func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (models.Event, models.GalleryBatch, error) {
	const op = "service.EventService.Create"
	log := s.log.With(slog.String("op", op), slog.String("title", req.Title))

	if err := checkPeriod(req.StartsAt, req.EndsAt); err != nil {
		return models.Event{}, models.GalleryBatch{}, err
	}

	batch, err := s.galleries.ProcessGalleryData(ctx, req.GalleryImages, s.gc)
	if err != nil {
		log.Error("failed to create event gallery", sl.Err(err))
		return models.Event{}, models.GalleryBatch{}, fmt.Errorf("failed to create event gallery: %w", err)
	}

	galleryID := batch.GalleryID
	created, err := s.events.CreateEvent(ctx, models.Event{
		Title:       req.Title,
		Description: req.Description,
		VenueID:     req.VenueID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		GalleryID:   &galleryID,
	})
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		s.dropGallery(ctx, log, galleryID)
		return models.Event{}, models.GalleryBatch{}, fmt.Errorf("failed to create event: %w", err)
	}

	created.Images = batch.Images
	if created.Images == nil {
		created.Images = []models.ProcessedImage{}
	}

	log.Info("event created", slog.String("event_id", created.ID.String()))

	return created, batch, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "service.EventService.Get"
	log := s.log.With(slog.String("op", op), slog.String("event_id", id.String()))

	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return models.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	return s.withImages(ctx, event), nil
}

func (s *EventService) List(ctx context.Context, f models.EventFilter) ([]models.Event, models.Pagination, error) {
	const op = "service.EventService.List"
	log := s.log.With(slog.String("op", op))

	f.Limit, f.Offset, f.Page = models.PageWindow(f.Limit, f.Offset, f.Page, defaultLimit, maxLimit)

	events, total, err := s.events.ListEvents(ctx, f)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		return nil, models.Pagination{}, fmt.Errorf("failed to list events: %w", err)
	}

	for i := range events {
		events[i] = s.withImages(ctx, events[i])
	}

	return events, models.NewPagination(f.Page, f.Limit, total), nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, models.GalleryBatch, error) {
	const op = "service.EventService.Update"
	log := s.log.With(slog.String("op", op), slog.String("event_id", id.String()))

	current, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return models.Event{}, models.GalleryBatch{}, fmt.Errorf("failed to get event: %w", err)
	}

	startsAt, endsAt := current.StartsAt, current.EndsAt
	if req.StartsAt != nil {
		startsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		endsAt = req.EndsAt
	}
	if err := checkPeriod(startsAt, endsAt); err != nil {
		return models.Event{}, models.GalleryBatch{}, err
	}

	updates := req.Updates()

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
			log.Error("failed to update event gallery", sl.Err(err))
			return models.Event{}, models.GalleryBatch{}, fmt.Errorf("failed to update event gallery: %w", err)
		}
	}

	updated := current
	if len(updates) > 0 {
		updated, err = s.events.UpdateEventFields(ctx, id, updates)
		if err != nil {
			log.Error("failed to update event", sl.Err(err))
			if created {
				s.dropGallery(ctx, log, batch.GalleryID)
			}
			return models.Event{}, models.GalleryBatch{}, fmt.Errorf("failed to update event: %w", err)
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

	return updated, batch, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.EventService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("event_id", id.String()))

	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.GalleryID != nil {
		if err := s.galleries.DeleteGallery(ctx, *event.GalleryID, s.gc); err != nil {
			log.Warn("failed to delete event gallery", sl.Err(err))
		}
	}

	if err := s.events.SoftDeleteEvent(ctx, id); err != nil {
		log.Error("failed to delete event", sl.Err(err))
		return fmt.Errorf("failed to delete event: %w", err)
	}

	log.Info("event deleted")

	return nil
}

func (s *EventService) withImages(ctx context.Context, e models.Event) models.Event {
	if e.GalleryID == nil {
		e.Images = []models.ProcessedImage{}
		return e
	}

	e.Images = s.galleries.GetGalleryImages(ctx, *e.GalleryID, s.gc)
	return e
}

// checkPeriod ends_at не раньше starts_at
func checkPeriod(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return storage.NewValidationError("invalid event period", "ends_at is before starts_at")
	}
	return nil
}

// dropGallery удаляет галерею, не привязанную к строке events
func (s *EventService) dropGallery(ctx context.Context, log *slog.Logger, galleryID uuid.UUID) {
	if err := s.galleries.DeleteGallery(ctx, galleryID, s.gc); err != nil {
		log.Warn("failed to clean up event gallery", slog.String("gallery_id", galleryID.String()), sl.Err(err))
	}
}
