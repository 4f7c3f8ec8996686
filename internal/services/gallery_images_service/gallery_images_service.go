package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/imagedata"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/metrics"
	"edge_api/internal/repository"
	"edge_api/internal/storage"
	filestorage "edge_api/internal/storage/filestorage"

	"github.com/google/uuid"
)

const (
	MaxImages   = 6
	MinImages   = 1
	MaxFileSize = 5 * 1024 * 1024
)

var allowedMimeTypes = []string{"image/jpeg", "image/png", "image/webp"}

// GalleryImagesService строгий вариант галереи площадки: лимиты, порядок показа
// и единственное основное изображение.
type GalleryImagesService struct {
	log       *slog.Logger
	galleries repository.GalleryRepository
	images    repository.GalleryImageRepository
	cache     repository.GalleryCache
	files     filestorage.FileStorage
	policy    models.DeletionPolicy
	bucket    string
	now       func() time.Time
}

func NewGalleryImagesService(
	log *slog.Logger,
	galleries repository.GalleryRepository,
	images repository.GalleryImageRepository,
	cache repository.GalleryCache,
	files filestorage.FileStorage,
	policy models.DeletionPolicy,
) *GalleryImagesService {
	return &GalleryImagesService{
		log:       log,
		galleries: galleries,
		images:    images,
		cache:     cache,
		files:     files,
		policy:    policy,
		bucket:    models.VenueGalleriesBucket,
		now:       time.Now,
	}
}

// Upload добавляет изображения в существующую или новую галерею
func (s *GalleryImagesService) Upload(ctx context.Context, req models.GalleryUpload) (models.UploadSummary, error) {
	const op = "service.GalleryImagesService.Upload"
	log := s.log.With(
		slog.String("op", op),
		slog.Int("images", len(req.Images)),
	)

	payloads, verr := validateUpload(req)
	if verr != nil {
		log.Warn("upload rejected", sl.Err(verr))
		return models.UploadSummary{}, verr
	}

	galleryID, err := s.resolveGallery(ctx, req)
	if err != nil {
		log.Error("failed to resolve gallery", sl.Err(err))
		return models.UploadSummary{}, err
	}
	log = log.With(slog.String("gallery_id", galleryID.String()))

	current, err := s.images.CountByGallery(ctx, galleryID, nil)
	if err != nil {
		log.Error("failed to count gallery images", sl.Err(err))
		return models.UploadSummary{}, fmt.Errorf("failed to count gallery images: %w", err)
	}

	if current+len(req.Images) > MaxImages {
		return models.UploadSummary{}, storage.NewValidationError(
			fmt.Sprintf("Cannot upload %d images. Gallery already has %d images. Maximum allowed: %d", len(req.Images), current, MaxImages),
		).WithDetails(map[string]interface{}{
			"current_count": current,
			"max_allowed":   MaxImages,
		})
	}

	primary := primaryIndex(req.Images, current)
	ts := s.now().UnixMilli()

	summary := models.UploadSummary{
		GalleryID:      galleryID,
		UploadedImages: []models.UploadedImage{},
	}

	for i, image := range req.Images {
		res := models.ImageResult{Index: i}

		order := current + i + 1
		if image.DisplayOrder != nil {
			order = *image.DisplayOrder
		}
		isPrimary := i == primary

		path := fmt.Sprintf("%s/%d-%s", galleryID, ts, image.FileName)
		payload := payloads[i]

		if _, err := s.files.Upload(ctx, s.bucket, path, payload.Data, image.MimeType); err != nil {
			summary.Results = append(summary.Results, s.skip(log, res, fmt.Errorf("%w: %v", storage.ErrUpload, err)))
			continue
		}

		if isPrimary && current > 0 {
			if err := s.images.ClearPrimary(ctx, galleryID); err != nil {
				summary.Results = append(summary.Results, s.skip(log, res, fmt.Errorf("%w: %v", storage.ErrMetadata, err)))
				continue
			}
		}

		row, err := s.images.CreateImage(ctx, models.GalleryImage{
			GalleryID:    galleryID,
			ImageName:    image.FileName,
			FilePath:     path,
			FileSize:     payload.Size(),
			MimeType:     image.MimeType,
			DisplayOrder: order,
			IsPrimary:    isPrimary,
		})
		if err != nil {
			log.Warn("orphaned blob after metadata failure", slog.String("path", path))
			summary.Results = append(summary.Results, s.skip(log, res, fmt.Errorf("%w: %v", storage.ErrMetadata, err)))
			continue
		}

		res.ImageID = row.ID
		summary.Results = append(summary.Results, res)
		summary.UploadedImages = append(summary.UploadedImages, models.UploadedImage{
			ID:           row.ID,
			Path:         path,
			URL:          s.files.PublicURL(s.bucket, path),
			FileName:     image.FileName,
			DisplayOrder: order,
			IsPrimary:    isPrimary,
		})
	}

	summary.TotalImages = current + len(summary.UploadedImages)
	s.invalidate(ctx, log, galleryID)

	log.Info("images uploaded", slog.Int("uploaded", len(summary.UploadedImages)))

	return summary, nil
}

// Delete мягко удаляет изображения галереи; при KeepAtLeastOne галерея не опустошается
func (s *GalleryImagesService) Delete(ctx context.Context, galleryID uuid.UUID, imageIDs []uuid.UUID) (models.DeleteSummary, error) {
	const op = "service.GalleryImagesService.Delete"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("policy", s.policy.String()),
	)

	if len(imageIDs) == 0 {
		return models.DeleteSummary{}, storage.NewValidationError(
			"Validation failed",
			"image_ids array is required and must contain at least one image ID",
		)
	}

	toDelete, err := s.images.ListByIDs(ctx, galleryID, imageIDs)
	if err != nil {
		log.Error("failed to fetch images", sl.Err(err))
		return models.DeleteSummary{}, fmt.Errorf("failed to fetch images: %w", err)
	}
	if len(toDelete) == 0 {
		return models.DeleteSummary{}, fmt.Errorf("no images found to delete: %w", storage.ErrNotFound)
	}

	remaining, err := s.images.CountByGallery(ctx, galleryID, imageIDs)
	if err != nil {
		log.Error("failed to count remaining images", sl.Err(err))
		return models.DeleteSummary{}, fmt.Errorf("failed to count remaining images: %w", err)
	}

	if s.policy == models.KeepAtLeastOne && remaining < MinImages {
		return models.DeleteSummary{}, storage.NewValidationError(
			"Cannot delete all images. At least one image must remain in the gallery",
		).WithDetails(map[string]interface{}{"min_images": MinImages})
	}

	ids := make([]uuid.UUID, 0, len(toDelete))
	for _, img := range toDelete {
		ids = append(ids, img.ID)

		path := img.FilePath
		if path == "" {
			path = galleryID.String() + "/" + img.ImageName
		}
		if err := s.files.Remove(ctx, s.bucket, []string{path}); err != nil {
			log.Warn("failed to remove image from storage", slog.String("path", path), sl.Err(err))
		}
	}

	if err := s.images.SoftDeleteImages(ctx, ids); err != nil {
		log.Error("failed to delete images", sl.Err(err))
		return models.DeleteSummary{}, fmt.Errorf("failed to delete images: %w", err)
	}

	s.invalidate(ctx, log, galleryID)

	log.Info("images deleted", slog.Int("deleted", len(ids)), slog.Int("remaining", remaining))

	return models.DeleteSummary{
		DeletedImages:   len(ids),
		RemainingImages: remaining,
		GalleryID:       galleryID,
	}, nil
}

// Get галерея и её изображения в порядке показа
func (s *GalleryImagesService) Get(ctx context.Context, galleryID uuid.UUID) (models.GalleryView, error) {
	const op = "service.GalleryImagesService.Get"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
	)

	gallery, err := s.galleries.GetGalleryByID(ctx, galleryID)
	if err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		return models.GalleryView{}, fmt.Errorf("failed to get gallery: %w", err)
	}

	rows, err := s.images.ListByGallery(ctx, galleryID)
	if err != nil {
		log.Error("failed to list images", sl.Err(err))
		return models.GalleryView{}, fmt.Errorf("failed to list images: %w", err)
	}

	images := make([]models.ImageView, 0, len(rows))
	for _, row := range rows {
		path := row.FilePath
		if path == "" {
			path = galleryID.String() + "/" + row.ImageName
		}
		images = append(images, models.ImageView{
			GalleryImage: row,
			URL:          s.files.PublicURL(s.bucket, path),
		})
	}

	return models.GalleryView{
		GalleryID:   gallery.ID,
		Name:        gallery.Name,
		Description: gallery.Description,
		VenueID:     gallery.VenueID,
		Images:      images,
		TotalImages: len(images),
		CreatedAt:   gallery.CreatedAt,
		UpdatedAt:   gallery.UpdatedAt,
	}, nil
}

func (s *GalleryImagesService) resolveGallery(ctx context.Context, req models.GalleryUpload) (uuid.UUID, error) {
	if req.GalleryID != nil {
		gallery, err := s.galleries.GetGalleryByID(ctx, *req.GalleryID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to get gallery: %w", err)
		}
		return gallery.ID, nil
	}

	name := "New Gallery"
	if req.VenueID != nil {
		name = fmt.Sprintf("Venue %s Gallery", req.VenueID)
	}

	gallery, err := s.galleries.CreateGallery(ctx, models.Gallery{Name: &name, VenueID: req.VenueID})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create gallery: %w", err)
	}

	return gallery.ID, nil
}

func (s *GalleryImagesService) invalidate(ctx context.Context, log *slog.Logger, galleryID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, s.bucket, galleryID); err != nil {
		log.Warn("gallery cache invalidation failed", sl.Err(err))
	}
}

func (s *GalleryImagesService) skip(log *slog.Logger, res models.ImageResult, err error) models.ImageResult {
	res.Err = err
	res.Kind = storage.KindOf(err)
	metrics.GalleryImagesSkipped.WithLabelValues(string(res.Kind)).Inc()
	log.Warn("gallery image skipped", slog.Int("index", res.Index), slog.String("kind", string(res.Kind)), sl.Err(err))
	return res
}

// primaryIndex индекс основного изображения запроса или -1.
// В пустой галерее основным становится первое.
func primaryIndex(images []models.UploadImage, current int) int {
	for i, img := range images {
		if img.IsPrimary != nil && *img.IsPrimary {
			return i
		}
	}
	if current == 0 && len(images) > 0 {
		return 0
	}
	return -1
}

func validateUpload(req models.GalleryUpload) ([]imagedata.Payload, error) {
	var reasons []string

	if len(req.Images) < MinImages {
		reasons = append(reasons, fmt.Sprintf("At least %d image is required", MinImages))
	}
	if len(req.Images) > MaxImages {
		reasons = append(reasons, fmt.Sprintf("Maximum %d images allowed", MaxImages))
	}

	payloads := make([]imagedata.Payload, len(req.Images))
	primaries := 0

	for i, image := range req.Images {
		var errs []string

		if image.FileName == "" {
			errs = append(errs, "file_name is required and must be a string")
		} else if strings.ContainsAny(image.FileName, `/\`) || strings.Contains(image.FileName, "..") {
			errs = append(errs, "file_name must not contain path separators")
		}

		if !allowedMime(image.MimeType) {
			errs = append(errs, "mime_type must be one of: "+strings.Join(allowedMimeTypes, ", "))
		}

		if image.DisplayOrder != nil && *image.DisplayOrder < 1 {
			errs = append(errs, "display_order must be a positive number")
		}

		if image.IsPrimary != nil && *image.IsPrimary {
			primaries++
		}

		payload, err := imagedata.Decode(image.FileData)
		switch {
		case err != nil:
			errs = append(errs, "Invalid base64 image data")
		case payload.Size() > MaxFileSize:
			errs = append(errs, fmt.Sprintf("File size must be less than %dMB", MaxFileSize/(1024*1024)))
		default:
			payloads[i] = payload
		}

		if len(errs) > 0 {
			reasons = append(reasons, fmt.Sprintf("Image %d: %s", i+1, strings.Join(errs, ", ")))
		}
	}

	if primaries > 1 {
		reasons = append(reasons, "Only one image can be marked as primary")
	}

	if len(reasons) > 0 {
		return nil, storage.NewValidationError("Validation failed", reasons...).
			WithDetails(map[string]interface{}{"errors": reasons})
	}

	return payloads, nil
}

func allowedMime(mime string) bool {
	for _, m := range allowedMimeTypes {
		if m == mime {
			return true
		}
	}
	return false
}
