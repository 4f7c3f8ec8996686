package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"edge_api/internal/broker/rabbitmq"
	"edge_api/internal/domain/models"
	"edge_api/internal/lib/imagedata"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/metrics"
	"edge_api/internal/repository"
	"edge_api/internal/storage"
	filestorage "edge_api/internal/storage/filestorage"

	"github.com/google/uuid"
)

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// GalleryService жизненный цикл галереи для любого типа владельца.
// Галерея может стать пустой (models.AllowEmpty).
type GalleryService struct {
	log       *slog.Logger
	galleries repository.GalleryRepository
	images    repository.GalleryImageRepository
	cache     repository.GalleryCache
	files     filestorage.FileStorage
	events    EventPublisher
	now       func() time.Time
}

func NewGalleryService(
	log *slog.Logger,
	galleries repository.GalleryRepository,
	images repository.GalleryImageRepository,
	cache repository.GalleryCache,
	files filestorage.FileStorage,
	events EventPublisher,
) *GalleryService {
	return &GalleryService{
		log:       log,
		galleries: galleries,
		images:    images,
		cache:     cache,
		files:     files,
		events:    events,
		now:       time.Now,
	}
}

func (s *GalleryService) Policy() models.DeletionPolicy {
	return models.AllowEmpty
}

// ProcessGalleryData всегда создает новую галерею, затем загружает images.
// Ошибка возвращается только если не удалось создать саму галерею.
func (s *GalleryService) ProcessGalleryData(ctx context.Context, images []string, gc models.GalleryContext) (models.GalleryBatch, error) {
	const op = "service.GalleryService.ProcessGalleryData"
	log := s.log.With(
		slog.String("op", op),
		slog.String("bucket", gc.Bucket),
		slog.Int("images", len(images)),
	)

	gallery, err := s.galleries.CreateGallery(ctx, models.Gallery{})
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return models.GalleryBatch{}, fmt.Errorf("failed to create gallery: %w", err)
	}

	log = log.With(slog.String("gallery_id", gallery.ID.String()))

	uploads := s.addImages(ctx, log, gallery.ID, images, gc)

	batch := models.GalleryBatch{
		GalleryID: gallery.ID,
		Images:    processed(uploads),
		Uploads:   uploads,
	}

	s.reportSkipped(log, batch)
	log.Info("gallery created", slog.Int("processed", len(batch.Images)))

	return batch, nil
}

// GetGalleryImages список изображений с публичными URL. Ошибки чтения дают пустой список.
func (s *GalleryService) GetGalleryImages(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) []models.ProcessedImage {
	const op = "service.GalleryService.GetGalleryImages"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	cached, ok, err := s.cache.GetImages(ctx, gc.Bucket, galleryID)
	if err != nil {
		log.Warn("gallery cache read failed", sl.Err(err))
	}
	if ok {
		return cached
	}

	rows, err := s.images.ListByGallery(ctx, galleryID)
	if err != nil {
		log.Error("failed to list gallery images", sl.Err(err))
		return []models.ProcessedImage{}
	}

	images := make([]models.ProcessedImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, models.ProcessedImage{
			ID:       row.ID,
			FileName: row.ImageName,
			URL:      s.files.PublicURL(gc.Bucket, gc.ObjectPath(galleryID, row.ImageName)),
		})
	}

	if err := s.cache.SaveImages(ctx, gc.Bucket, galleryID, images); err != nil {
		log.Warn("gallery cache write failed", sl.Err(err))
	}

	return images
}

// UpdateGalleryWithImages сначала удаляет deletedIDs, затем добавляет newImages.
// Batch.Images содержит полный текущий список галереи, а не только изменения.
func (s *GalleryService) UpdateGalleryWithImages(
	ctx context.Context,
	galleryID uuid.UUID,
	newImages []string,
	deletedIDs []uuid.UUID,
	gc models.GalleryContext,
) (models.GalleryBatch, error) {
	const op = "service.GalleryService.UpdateGalleryWithImages"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.Int("new", len(newImages)),
		slog.Int("deleted", len(deletedIDs)),
	)

	if _, err := s.galleries.GetGalleryByID(ctx, galleryID); err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		return models.GalleryBatch{}, fmt.Errorf("failed to get gallery: %w", err)
	}

	batch := models.GalleryBatch{GalleryID: galleryID}

	if len(deletedIDs) > 0 {
		batch.Removals = s.removeImages(ctx, log, galleryID, deletedIDs, gc)
	}

	if len(newImages) > 0 {
		batch.Uploads = s.addImages(ctx, log, galleryID, newImages, gc)
	}

	s.invalidate(ctx, log, gc, galleryID)

	batch.Images = s.GetGalleryImages(ctx, galleryID, gc)

	s.reportSkipped(log, batch)
	log.Info("gallery updated", slog.Int("images", len(batch.Images)))

	return batch, nil
}

// DeleteGallery удаляет файлы (best-effort), строки изображений и саму галерею.
// Ошибки хранилища строк не поглощаются.
func (s *GalleryService) DeleteGallery(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) error {
	const op = "service.GalleryService.DeleteGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	if _, err := s.galleries.GetGalleryByID(ctx, galleryID); err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		return fmt.Errorf("failed to get gallery: %w", err)
	}

	rows, err := s.images.ListByGallery(ctx, galleryID)
	if err != nil {
		log.Error("failed to list gallery images", sl.Err(err))
		return fmt.Errorf("failed to list gallery images: %w", err)
	}

	// кэш сбрасывается при любом исходе, как только начато удаление
	defer s.invalidate(ctx, log, gc, galleryID)

	for _, row := range rows {
		path := gc.ObjectPath(galleryID, row.ImageName)
		if err := s.files.Remove(ctx, gc.Bucket, []string{path}); err != nil {
			log.Warn("failed to remove image from storage", slog.String("path", path), sl.Err(err))
		}
	}

	if err := s.images.DeleteByGalleryID(ctx, galleryID); err != nil {
		log.Error("failed to delete gallery images", sl.Err(err))
		return fmt.Errorf("failed to delete gallery images: %w", err)
	}

	if err := s.galleries.SoftDeleteGallery(ctx, galleryID); err != nil {
		log.Error("failed to delete gallery", sl.Err(err))
		return fmt.Errorf("failed to delete gallery: %w", err)
	}

	if err := s.events.Publish(ctx, rabbitmq.RoutingGalleryDeleted, rabbitmq.GalleryDeleted{
		GalleryID: galleryID.String(),
		Bucket:    gc.Bucket,
		Images:    len(rows),
		At:        s.now().UTC(),
	}); err != nil {
		log.Warn("failed to publish gallery deletion", sl.Err(err))
	}

	log.Info("gallery deleted", slog.Int("images", len(rows)))

	return nil
}

func (s *GalleryService) addImages(ctx context.Context, log *slog.Logger, galleryID uuid.UUID, images []string, gc models.GalleryContext) []models.ImageResult {
	ts := s.now().UnixMilli()
	results := make([]models.ImageResult, 0, len(images))

	for i, raw := range images {
		res := models.ImageResult{Index: i}

		payload, err := imagedata.Decode(raw)
		if err != nil {
			results = append(results, skip(res, fmt.Errorf("%w: %v", storage.ErrDecode, err)))
			continue
		}

		filename := fmt.Sprintf("%d-image-%d.%s", ts, i+1, payload.Ext)
		path := gc.ObjectPath(galleryID, filename)

		if _, err := s.files.Upload(ctx, gc.Bucket, path, payload.Data, payload.ContentType); err != nil {
			results = append(results, skip(res, fmt.Errorf("%w: %v", storage.ErrUpload, err)))
			continue
		}

		row, err := s.images.CreateImage(ctx, models.GalleryImage{
			GalleryID: galleryID,
			ImageName: filename,
			FileSize:  payload.Size(),
			MimeType:  payload.ContentType,
		})
		if err != nil {
			// файл остается в хранилище без строки
			log.Warn("orphaned blob after metadata failure", slog.String("path", path))
			results = append(results, skip(res, fmt.Errorf("%w: %v", storage.ErrMetadata, err)))
			continue
		}

		res.ImageID = row.ID
		res.Image = &models.ProcessedImage{
			ID:       row.ID,
			FileName: filename,
			URL:      s.files.PublicURL(gc.Bucket, path),
		}
		results = append(results, res)
	}

	return results
}

func (s *GalleryService) removeImages(ctx context.Context, log *slog.Logger, galleryID uuid.UUID, ids []uuid.UUID, gc models.GalleryContext) []models.ImageResult {
	results := make([]models.ImageResult, 0, len(ids))

	for i, id := range ids {
		res := models.ImageResult{Index: i, ImageID: id}

		img, err := s.images.GetImageByID(ctx, id)
		if err == nil && img.GalleryID != galleryID {
			err = fmt.Errorf("image belongs to another gallery: %w", storage.ErrNotFound)
		}
		if err != nil {
			results = append(results, skip(res, err))
			continue
		}

		path := gc.ObjectPath(galleryID, img.ImageName)
		if err := s.files.Remove(ctx, gc.Bucket, []string{path}); err != nil {
			log.Warn("failed to remove image from storage", slog.String("path", path), sl.Err(err))
		}

		if err := s.images.DeleteImage(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			results = append(results, skip(res, fmt.Errorf("%w: %v", storage.ErrMetadata, err)))
			continue
		}

		results = append(results, res)
	}

	return results
}

func (s *GalleryService) invalidate(ctx context.Context, log *slog.Logger, gc models.GalleryContext, galleryID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, gc.Bucket, galleryID); err != nil {
		log.Warn("gallery cache invalidation failed", sl.Err(err))
	}
}

func (s *GalleryService) reportSkipped(log *slog.Logger, batch models.GalleryBatch) {
	for _, group := range [][]models.ImageResult{batch.Uploads, batch.Removals} {
		for _, r := range group {
			if r.OK() {
				continue
			}
			metrics.GalleryImagesSkipped.WithLabelValues(string(r.Kind)).Inc()
			log.Warn("gallery image skipped",
				slog.Int("index", r.Index),
				slog.String("kind", string(r.Kind)),
				sl.Err(r.Err),
			)
		}
	}
}

func skip(res models.ImageResult, err error) models.ImageResult {
	res.Err = err
	res.Kind = storage.KindOf(err)
	return res
}

func processed(results []models.ImageResult) []models.ProcessedImage {
	images := make([]models.ProcessedImage, 0, len(results))
	for _, r := range results {
		if r.OK() && r.Image != nil {
			images = append(images, *r.Image)
		}
	}
	return images
}
