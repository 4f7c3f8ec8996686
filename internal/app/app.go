package app

import (
	"context"
	"errors"
	"log/slog"

	httpapp "edge_api/internal/app/http"
	"edge_api/internal/broker/rabbitmq"
	"edge_api/internal/config"
	"edge_api/internal/domain/models"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/middleware"
	"edge_api/internal/repository"
	bannerservice "edge_api/internal/services/banner_service"
	eventservice "edge_api/internal/services/event_service"
	galleryimagesservice "edge_api/internal/services/gallery_images_service"
	galleryservice "edge_api/internal/services/gallery_service"
	venueservice "edge_api/internal/services/venue_service"
	filestorage "edge_api/internal/storage/filestorage"
	"edge_api/internal/storage/postgresql"
	redisapp "edge_api/internal/storage/redis"
	httprouters "edge_api/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
)

const storageDriverLocal = "local"

// EventPublisher общий интерфейс Publisher и NoopPublisher
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server

	db     *pgxpool.Pool
	redis  *redisapp.Client
	broker *rabbitmq.Publisher
}

func New(log *slog.Logger, cfg *config.Config) *App {
	db, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	rdb := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)

	files, staticDir := newFileStorage(cfg)

	var (
		events EventPublisher = rabbitmq.NoopPublisher{}
		broker *rabbitmq.Publisher
	)
	if cfg.RabbitMQ.URL != "" {
		broker, err = rabbitmq.NewPublisher(log, cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			// события best-effort, сервис работает и без брокера
			log.Warn("rabbitmq unavailable, events disabled", sl.Err(err))
		} else {
			events = broker
		}
	}

	repo := repository.NewRepository(db, rdb, cfg.Redis.GalleryTTL)

	galleryService := galleryservice.NewGalleryService(log, repo.Galleries, repo.GalleryImages, repo.GalleryCache, files, events)
	galleryImagesService := galleryimagesservice.NewGalleryImagesService(log, repo.Galleries, repo.GalleryImages, repo.GalleryCache, files, models.KeepAtLeastOne)
	bannerService := bannerservice.NewBannerService(log, repo.Banners, files, events, cfg.Counter.MaxAttempts)
	venueService := venueservice.NewVenueService(log, repo.Venues, galleryService)
	eventService := eventservice.NewEventService(log, repo.Events, galleryService)

	routers := httprouters.NewRouter(
		log,
		bannerService,
		galleryService,
		galleryImagesService,
		venueService,
		eventService,
		postgresql.NewHealthChecker(db),
		rdb,
	)

	auth := middleware.NewAuth(log, cfg.Supabase.JWTSecret)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.Timeout, routers, auth.RequireUser, staticDir)

	return &App{
		log:        log,
		HTTPServer: server,
		db:         db,
		redis:      rdb,
		broker:     broker,
	}
}

func newFileStorage(cfg *config.Config) (filestorage.FileStorage, string) {
	if cfg.Storage.Driver == storageDriverLocal {
		local, err := filestorage.NewLocalFileStorage(cfg.Storage.BaseDir, cfg.Storage.PublicURL)
		if err != nil {
			panic(err)
		}
		return local, cfg.Storage.BaseDir
	}

	return filestorage.NewSupabaseStorage(cfg.Supabase.URL, cfg.Supabase.ServiceKey), ""
}

// Stop останавливает HTTP-сервер и закрывает соединения
func (a *App) Stop() error {
	var errs []error

	if err := a.HTTPServer.Stop(); err != nil {
		errs = append(errs, err)
	}

	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := a.redis.Close(); err != nil {
		errs = append(errs, err)
	}

	a.db.Close()

	return errors.Join(errs...)
}
