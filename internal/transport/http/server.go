package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/transport/http/dto"
	"edge_api/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "edge_api/docs"
)

type BannerService interface {
	List(ctx context.Context, f models.BannerFilter) ([]models.Banner, models.Pagination, error)
	Get(ctx context.Context, id uuid.UUID) (models.Banner, error)
	Create(ctx context.Context, req dto.BannerRequest) (models.Banner, error)
	Update(ctx context.Context, id uuid.UUID, req dto.BannerRequest) (models.Banner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementDisplays(ctx context.Context, id uuid.UUID) (models.Banner, error)
	IncrementClicks(ctx context.Context, id uuid.UUID) (models.Banner, error)
}

type GalleryService interface {
	ProcessGalleryData(ctx context.Context, images []string, gc models.GalleryContext) (models.GalleryBatch, error)
	GetGalleryImages(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) []models.ProcessedImage
	UpdateGalleryWithImages(ctx context.Context, galleryID uuid.UUID, newImages []string, deletedIDs []uuid.UUID, gc models.GalleryContext) (models.GalleryBatch, error)
	DeleteGallery(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) error
}

type GalleryImagesService interface {
	Upload(ctx context.Context, req models.GalleryUpload) (models.UploadSummary, error)
	Delete(ctx context.Context, galleryID uuid.UUID, imageIDs []uuid.UUID) (models.DeleteSummary, error)
	Get(ctx context.Context, galleryID uuid.UUID) (models.GalleryView, error)
}

type VenueService interface {
	List(ctx context.Context, f models.VenueFilter) ([]models.Venue, models.Pagination, error)
	Get(ctx context.Context, id uuid.UUID) (models.Venue, error)
	Create(ctx context.Context, req dto.CreateVenueRequest) (models.Venue, models.GalleryBatch, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateVenueRequest) (models.Venue, models.GalleryBatch, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BackfillH3(ctx context.Context) (models.H3BackfillResult, error)
	H3Stats(ctx context.Context) (models.H3CoverageStats, error)
}

type EventService interface {
	List(ctx context.Context, f models.EventFilter) ([]models.Event, models.Pagination, error)
	Get(ctx context.Context, id uuid.UUID) (models.Event, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (models.Event, models.GalleryBatch, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, models.GalleryBatch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HealthChecker зависимость, проверяемая в /health
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log                  *slog.Logger
	BannerService        BannerService
	GalleryService       GalleryService
	GalleryImagesService GalleryImagesService
	VenueService         VenueService
	EventService         EventService
	checkers             []HealthChecker
}

func NewRouter(
	log *slog.Logger,
	bannerService BannerService,
	galleryService GalleryService,
	galleryImagesService GalleryImagesService,
	venueService VenueService,
	eventService EventService,
	checkers ...HealthChecker,
) *Routers {
	return &Routers{
		log:                  log,
		BannerService:        bannerService,
		GalleryService:       galleryService,
		GalleryImagesService: galleryImagesService,
		VenueService:         venueService,
		EventService:         eventService,
		checkers:             checkers,
	}
}

const healthTimeout = 3 * time.Second

// Health godoc
// @Summary Проверка состояния
// @Description Пингует postgres и redis
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 503 {object} response.Response{data=map[string]string}
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(r.checkers))

	for _, checker := range r.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			log.Warn("health check failed", slog.String("dependency", checker.Name()), sl.Err(err))
			result[checker.Name()] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		result[checker.Name()] = "ok"
	}

	resp := response.SuccessResponse(result)
	if status != http.StatusOK {
		resp.Status = "error"
	}

	return c.JSON(status, resp)
}

// fail отвечает ошибкой сервиса; внутренние ошибки логируются как error
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	status, body := response.FromError(err)

	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Warn("request rejected", slog.String("code", body.Error), sl.Err(err))
	}

	return c.JSON(status, body)
}

func invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
		string(models.KindValidation),
		response.ErrInvalidRequestFormat.Message,
		err.Error(),
	))
}

func pathID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

func queryBool(c echo.Context, name string) *bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	if err != nil {
		return nil
	}
	return &v
}

func queryFloat(c echo.Context, name string) *float64 {
	v, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryTime принимает RFC3339 или дату YYYY-MM-DD
func queryTime(c echo.Context, name string) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}

	return nil
}

func queryUUID(c echo.Context, name string) *uuid.UUID {
	id, err := uuid.Parse(c.QueryParam(name))
	if err != nil {
		return nil
	}
	return &id
}

// queryList значения параметра, повторенного или перечисленного через запятую
func queryList(c echo.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryParams()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
