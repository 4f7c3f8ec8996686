package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"edge_api/internal/domain/models"
	"edge_api/internal/storage"
	filestorage "edge_api/internal/storage/filestorage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const testBaseURL = "https://project.supabase.co"

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, error) {
	args := m.Called(ctx, gallery)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockGalleryRepository) SoftDeleteGallery(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

// memImages хранилище строк изображений в памяти
type memImages struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]models.GalleryImage
	seq       int
	failWrite bool
	failList  bool
}

func newMemImages() *memImages {
	return &memImages{rows: map[uuid.UUID]models.GalleryImage{}}
}

var errDB = errors.New("db unavailable")

func (r *memImages) CreateImage(_ context.Context, image models.GalleryImage) (models.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return models.GalleryImage{}, errDB
	}
	r.seq++
	image.ID = uuid.New()
	if image.DisplayOrder == 0 {
		image.DisplayOrder = r.seq
	}
	r.rows[image.ID] = image
	return image, nil
}

func (r *memImages) GetImageByID(_ context.Context, id uuid.UUID) (models.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.rows[id]
	if !ok || img.DeletedAt != nil {
		return models.GalleryImage{}, storage.ErrNotFound
	}
	return img, nil
}

func (r *memImages) ListByGallery(_ context.Context, galleryID uuid.UUID) ([]models.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errDB
	}
	out := []models.GalleryImage{}
	for _, img := range r.rows {
		if img.GalleryID == galleryID && img.DeletedAt == nil {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *memImages) ListByIDs(ctx context.Context, galleryID uuid.UUID, ids []uuid.UUID) ([]models.GalleryImage, error) {
	all, err := r.ListByGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []models.GalleryImage{}
	for _, img := range all {
		if want[img.ID] {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *memImages) CountByGallery(ctx context.Context, galleryID uuid.UUID, excluding []uuid.UUID) (int, error) {
	all, err := r.ListByGallery(ctx, galleryID)
	if err != nil {
		return 0, err
	}
	skip := map[uuid.UUID]bool{}
	for _, id := range excluding {
		skip[id] = true
	}
	n := 0
	for _, img := range all {
		if !skip[img.ID] {
			n++
		}
	}
	return n, nil
}

func (r *memImages) DeleteImage(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memImages) DeleteByGalleryID(_ context.Context, galleryID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errDB
	}
	for id, img := range r.rows {
		if img.GalleryID == galleryID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *memImages) SoftDeleteImages(_ context.Context, ids []uuid.UUID) error {
	return errors.New("not used by the lifecycle")
}

func (r *memImages) ClearPrimary(_ context.Context, _ uuid.UUID) error {
	return errors.New("not used by the lifecycle")
}

// memFiles хранилище объектов в памяти
type memFiles struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failUpload bool
	failRemove bool
}

func newMemFiles() *memFiles {
	return &memFiles{objects: map[string][]byte{}}
}

func (f *memFiles) Upload(_ context.Context, bucket, path string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return "", errors.New("bucket rejected blob")
	}
	f.objects[bucket+"/"+path] = data
	return path, nil
}

func (f *memFiles) Remove(_ context.Context, bucket string, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove {
		return errors.New("storage unavailable")
	}
	for _, p := range paths {
		delete(f.objects, bucket+"/"+p)
	}
	return nil
}

func (f *memFiles) PublicURL(bucket, path string) string {
	return filestorage.PublicURL(testBaseURL, bucket, path)
}

func (f *memFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// memCache кэш списков в памяти
type memCache struct {
	mu      sync.Mutex
	entries map[string][]models.ProcessedImage
	failAll bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]models.ProcessedImage{}}
}

func (c *memCache) GetImages(_ context.Context, bucket string, id uuid.UUID) ([]models.ProcessedImage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return nil, false, errors.New("redis down")
	}
	v, ok := c.entries[bucket+id.String()]
	return v, ok, nil
}

func (c *memCache) SaveImages(_ context.Context, bucket string, id uuid.UUID, images []models.ProcessedImage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return errors.New("redis down")
	}
	c.entries[bucket+id.String()] = images
	return nil
}

func (c *memCache) Invalidate(_ context.Context, bucket string, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failAll {
		return errors.New("redis down")
	}
	delete(c.entries, bucket+id.String())
	return nil
}
