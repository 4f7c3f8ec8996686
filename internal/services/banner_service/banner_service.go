package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"edge_api/internal/broker/rabbitmq"
	"edge_api/internal/domain/models"
	"edge_api/internal/lib/imagedata"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/repository"
	counter "edge_api/internal/services/counter_service"
	"edge_api/internal/storage"
	filestorage "edge_api/internal/storage/filestorage"
	"edge_api/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type BannerService struct {
	log      *slog.Logger
	banners  repository.BannerRepository
	counters *counter.Service[models.Banner]
	files    filestorage.FileStorage
	events   EventPublisher
	now      func() time.Time
}

func NewBannerService(
	log *slog.Logger,
	banners repository.BannerRepository,
	files filestorage.FileStorage,
	events EventPublisher,
	maxAttempts int,
) *BannerService {
	return &BannerService{
		log:      log,
		banners:  banners,
		counters: counter.New[models.Banner](log, banners, maxAttempts),
		files:    files,
		events:   events,
		now:      time.Now,
	}
}

func (s *BannerService) List(ctx context.Context, f models.BannerFilter) ([]models.Banner, models.Pagination, error) {
	const op = "service.BannerService.List"
	log := s.log.With(slog.String("op", op))

	f.Limit, f.Offset, f.Page = models.PageWindow(f.Limit, f.Offset, f.Page, defaultLimit, maxLimit)

	banners, total, err := s.banners.ListBanners(ctx, f)
	if err != nil {
		log.Error("failed to list banners", sl.Err(err))
		return nil, models.Pagination{}, fmt.Errorf("failed to list banners: %w", err)
	}

	for i := range banners {
		banners[i] = s.withURL(banners[i])
	}

	return banners, models.NewPagination(f.Page, f.Limit, total), nil
}

func (s *BannerService) Get(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	const op = "service.BannerService.Get"
	log := s.log.With(slog.String("op", op), slog.String("banner_id", id.String()))

	banner, err := s.banners.GetBannerByID(ctx, id)
	if err != nil {
		log.Error("failed to get banner", sl.Err(err))
		return models.Banner{}, fmt.Errorf("failed to get banner: %w", err)
	}

	return s.withURL(banner), nil
}

// Create сохраняет баннер; image_base64 загружается после вставки,
// так как путь содержит id строки
func (s *BannerService) Create(ctx context.Context, req dto.BannerRequest) (models.Banner, error) {
	const op = "service.BannerService.Create"
	log := s.log.With(slog.String("op", op))

	var zero int64
	active := true

	banner := models.Banner{
		BannerImagePath: req.BannerImagePath,
		RedirectLink:    req.RedirectLink,
		Active:          &active,
		ExpirationDate:  req.ExpirationDate,
		CurrentDisplays: &zero,
		CurrentClicks:   &zero,
		MaxDisplays:     req.MaxDisplays,
		MaxClicks:       req.MaxClicks,
	}
	if req.Active != nil {
		banner.Active = req.Active
	}
	if req.CurrentDisplays != nil {
		banner.CurrentDisplays = req.CurrentDisplays
	}
	if req.CurrentClicks != nil {
		banner.CurrentClicks = req.CurrentClicks
	}

	created, err := s.banners.CreateBanner(ctx, banner)
	if err != nil {
		log.Error("failed to create banner", sl.Err(err))
		return models.Banner{}, fmt.Errorf("failed to create banner: %w", err)
	}

	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		created, err = s.attachImage(ctx, log, created.ID, *req.ImageBase64)
		if err != nil {
			return models.Banner{}, err
		}
	}

	log.Info("banner created", slog.String("banner_id", created.ID.String()))

	return s.withURL(created), nil
}

// Update частичное обновление; переданные поля перезаписываются как есть
func (s *BannerService) Update(ctx context.Context, id uuid.UUID, req dto.BannerRequest) (models.Banner, error) {
	const op = "service.BannerService.Update"
	log := s.log.With(slog.String("op", op), slog.String("banner_id", id.String()))

	updated, err := s.banners.UpdateBannerFields(ctx, id, req.Updates())
	if err != nil {
		log.Error("failed to update banner", sl.Err(err))
		return models.Banner{}, fmt.Errorf("failed to update banner: %w", err)
	}

	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		updated, err = s.attachImage(ctx, log, id, *req.ImageBase64)
		if err != nil {
			return models.Banner{}, err
		}
	}

	return s.withURL(updated), nil
}

func (s *BannerService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.BannerService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("banner_id", id.String()))

	if err := s.banners.SoftDeleteBanner(ctx, id); err != nil {
		log.Error("failed to delete banner", sl.Err(err))
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	log.Info("banner deleted")

	return nil
}

func (s *BannerService) IncrementDisplays(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	return s.increment(ctx, id, models.CounterDisplays)
}

func (s *BannerService) IncrementClicks(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	return s.increment(ctx, id, models.CounterClicks)
}

func (s *BannerService) increment(ctx context.Context, id uuid.UUID, name models.CounterName) (models.Banner, error) {
	const op = "service.BannerService.increment"
	log := s.log.With(
		slog.String("op", op),
		slog.String("banner_id", id.String()),
		slog.String("counter", string(name)),
	)

	res, err := s.counters.Increment(ctx, id, name)
	if err != nil {
		return models.Banner{}, fmt.Errorf("failed to increment %s: %w", name, err)
	}

	if res.Deactivated {
		if err := s.events.Publish(ctx, rabbitmq.RoutingBannerDeactivated, rabbitmq.BannerDeactivated{
			BannerID: id.String(),
			Counter:  string(name),
			Value:    res.Value,
			At:       s.now().UTC(),
		}); err != nil {
			log.Warn("failed to publish banner deactivation", sl.Err(err))
		}
	}

	return s.withURL(res.Row), nil
}

func (s *BannerService) attachImage(ctx context.Context, log *slog.Logger, id uuid.UUID, raw string) (models.Banner, error) {
	payload, err := imagedata.Decode(raw)
	if err != nil {
		log.Warn("invalid banner image", sl.Err(err))
		return models.Banner{}, storage.NewValidationError("invalid image_base64", err.Error())
	}

	path := fmt.Sprintf("%s/%d-uploaded-image.%s", id, s.now().UnixMilli(), payload.Ext)

	if _, err := s.files.Upload(ctx, models.BannersBucket, path, payload.Data, payload.ContentType); err != nil {
		log.Error("failed to upload banner image", slog.String("path", path), sl.Err(err))
		return models.Banner{}, fmt.Errorf("failed to upload banner image: %w: %v", storage.ErrUpload, err)
	}

	banner, err := s.banners.UpdateBannerFields(ctx, id, map[string]interface{}{"banner_image_path": path})
	if err != nil {
		log.Error("failed to save banner image path", sl.Err(err))
		return models.Banner{}, fmt.Errorf("failed to save banner image path: %w", err)
	}

	return banner, nil
}

func (s *BannerService) withURL(b models.Banner) models.Banner {
	if b.BannerImagePath != nil && *b.BannerImagePath != "" {
		b.ImageURL = s.files.PublicURL(models.BannersBucket, *b.BannerImagePath)
	}
	return b
}
