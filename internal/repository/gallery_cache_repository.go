package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edge_api/internal/domain/models"
	redisapp "edge_api/internal/storage/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisGalleryCache кэш списка изображений галереи
type RedisGalleryCache struct {
	Client *redisapp.Client
	TTL    time.Duration
}

func NewRedisGalleryCache(client *redisapp.Client, ttl time.Duration) *RedisGalleryCache {
	return &RedisGalleryCache{Client: client, TTL: ttl}
}

// GetImages возвращает (nil, false, nil) при промахе
func (r *RedisGalleryCache) GetImages(ctx context.Context, bucket string, galleryID uuid.UUID) ([]models.ProcessedImage, bool, error) {
	const op = "repository.RedisGalleryCache.GetImages"

	raw, err := r.Client.Get(ctx, galleryKey(bucket, galleryID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var images []models.ProcessedImage
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return images, true, nil
}

func (r *RedisGalleryCache) SaveImages(ctx context.Context, bucket string, galleryID uuid.UUID, images []models.ProcessedImage) error {
	const op = "repository.RedisGalleryCache.SaveImages"

	raw, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, galleryKey(bucket, galleryID), raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisGalleryCache) Invalidate(ctx context.Context, bucket string, galleryID uuid.UUID) error {
	const op = "repository.RedisGalleryCache.Invalidate"

	if err := r.Client.Del(ctx, galleryKey(bucket, galleryID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func galleryKey(bucket string, galleryID uuid.UUID) string {
	return "gallery:" + bucket + ":" + galleryID.String()
}
