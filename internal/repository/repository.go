package repository

import (
	"time"

	redisapp "edge_api/internal/storage/redis"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository набор хранилищ поверх одного пула и одного redis-клиента
type Repository struct {
	Banners       BannerRepository
	Galleries     GalleryRepository
	GalleryImages GalleryImageRepository
	GalleryCache  GalleryCache
	Venues        VenueRepository
	Events        EventRepository
}

func NewRepository(db *pgxpool.Pool, rdb *redisapp.Client, galleryTTL time.Duration) *Repository {
	return &Repository{
		Banners:       NewBannerRepo(db),
		Galleries:     NewGalleryRepo(db),
		GalleryImages: NewGalleryImageRepo(db),
		GalleryCache:  NewRedisGalleryCache(rdb, galleryTTL),
		Venues:        NewVenueRepo(db),
		Events:        NewEventRepo(db),
	}
}
