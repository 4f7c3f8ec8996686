package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/logger/handlers/slogdiscard"
	"edge_api/internal/storage"
	"edge_api/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Event, error) {
	args := m.Called(ctx, id, updates)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) SoftDeleteEvent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) ListEvents(ctx context.Context, f models.EventFilter) ([]models.Event, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Event), args.Int(1), args.Error(2)
}

type MockGalleryManager struct {
	mock.Mock
}

func (m *MockGalleryManager) ProcessGalleryData(ctx context.Context, images []string, gc models.GalleryContext) (models.GalleryBatch, error) {
	args := m.Called(ctx, images, gc)
	return args.Get(0).(models.GalleryBatch), args.Error(1)
}

func (m *MockGalleryManager) GetGalleryImages(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) []models.ProcessedImage {
	args := m.Called(ctx, galleryID, gc)
	return args.Get(0).([]models.ProcessedImage)
}

func (m *MockGalleryManager) UpdateGalleryWithImages(ctx context.Context, galleryID uuid.UUID, newImages []string, deletedIDs []uuid.UUID, gc models.GalleryContext) (models.GalleryBatch, error) {
	args := m.Called(ctx, galleryID, newImages, deletedIDs, gc)
	return args.Get(0).(models.GalleryBatch), args.Error(1)
}

func (m *MockGalleryManager) DeleteGallery(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) error {
	args := m.Called(ctx, galleryID, gc)
	return args.Error(0)
}

type EventServiceSuite struct {
	suite.Suite

	ctx       context.Context
	repo      *MockEventRepository
	galleries *MockGalleryManager
	svc       *EventService
	gc        models.GalleryContext
}

func (s *EventServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(MockEventRepository)
	s.galleries = new(MockGalleryManager)
	s.svc = NewEventService(slogdiscard.NewDiscardLogger(), s.repo, s.galleries)
	s.gc = models.ContextFor(models.OwnerEvents)
}

func (s *EventServiceSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.galleries.AssertExpectations(s.T())
}

func TestEventServiceSuite(t *testing.T) {
	suite.Run(t, new(EventServiceSuite))
}

func (s *EventServiceSuite) TestCreateUsesEventsContext() {
	galleryID := uuid.New()
	eventID := uuid.New()

	s.galleries.On("ProcessGalleryData", s.ctx, []string{"AAAA"}, s.gc).
		Return(models.GalleryBatch{GalleryID: galleryID}, nil).Once()
	s.repo.On("CreateEvent", s.ctx, mock.MatchedBy(func(e models.Event) bool {
		return e.Title == "Concert" && e.GalleryID != nil && *e.GalleryID == galleryID
	})).Return(models.Event{Base: models.Base{ID: eventID}, GalleryID: &galleryID}, nil).Once()

	event, batch, err := s.svc.Create(s.ctx, dto.CreateEventRequest{Title: "Concert", GalleryImages: []string{"AAAA"}})

	s.Require().NoError(err)
	s.Equal(eventID, event.ID)
	s.Equal(galleryID, batch.GalleryID)
	s.Equal("event-galleries", s.gc.Bucket)
	s.NotNil(event.Images)
}

func (s *EventServiceSuite) TestCreateRejectsReversedPeriod() {
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, _, err := s.svc.Create(s.ctx, dto.CreateEventRequest{Title: "x", StartsAt: &start, EndsAt: &end})

	s.ErrorIs(err, storage.ErrValidation)
}

func (s *EventServiceSuite) TestUpdateChecksMergedPeriod() {
	id := uuid.New()
	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)

	s.repo.On("GetEventByID", s.ctx, id).
		Return(models.Event{Base: models.Base{ID: id}, StartsAt: &start}, nil).Once()

	_, _, err := s.svc.Update(s.ctx, id, dto.UpdateEventRequest{EndsAt: &end})

	s.ErrorIs(err, storage.ErrValidation)
}

func (s *EventServiceSuite) TestUpdateExistingGallery() {
	id := uuid.New()
	galleryID := uuid.New()
	images := []models.ProcessedImage{{ID: uuid.New(), FileName: "b.png"}}

	s.repo.On("GetEventByID", s.ctx, id).
		Return(models.Event{Base: models.Base{ID: id}, GalleryID: &galleryID}, nil).Once()
	s.galleries.On("UpdateGalleryWithImages", s.ctx, galleryID, []string{"BBBB"}, []uuid.UUID(nil), s.gc).
		Return(models.GalleryBatch{GalleryID: galleryID, Images: images}, nil).Once()
	s.repo.On("UpdateEventFields", s.ctx, id, map[string]interface{}{"title": "Renamed"}).
		Return(models.Event{Base: models.Base{ID: id}, Title: "Renamed", GalleryID: &galleryID}, nil).Once()

	title := "Renamed"
	event, _, err := s.svc.Update(s.ctx, id, dto.UpdateEventRequest{Title: &title, GalleryImages: []string{"BBBB"}})

	s.Require().NoError(err)
	s.Equal("Renamed", event.Title)
	s.Equal(images, event.Images)
}

func (s *EventServiceSuite) TestUpdateDropsNewGalleryWhenRowUpdateFails() {
	id := uuid.New()
	galleryID := uuid.New()

	s.repo.On("GetEventByID", s.ctx, id).
		Return(models.Event{Base: models.Base{ID: id}}, nil).Once()
	s.galleries.On("ProcessGalleryData", s.ctx, []string{"AAAA"}, s.gc).
		Return(models.GalleryBatch{GalleryID: galleryID}, nil).Once()
	s.repo.On("UpdateEventFields", s.ctx, id, map[string]interface{}{"gallery_id": galleryID}).
		Return(models.Event{}, errors.New("db down")).Once()
	s.galleries.On("DeleteGallery", s.ctx, galleryID, s.gc).Return(nil).Once()

	_, _, err := s.svc.Update(s.ctx, id, dto.UpdateEventRequest{GalleryImages: []string{"AAAA"}})

	s.Require().Error(err)
	s.Contains(err.Error(), "failed to update event")
}

func (s *EventServiceSuite) TestDeleteKeepsGoingAfterGalleryFailure() {
	id := uuid.New()
	galleryID := uuid.New()

	s.repo.On("GetEventByID", s.ctx, id).
		Return(models.Event{Base: models.Base{ID: id}, GalleryID: &galleryID}, nil).Once()
	s.galleries.On("DeleteGallery", s.ctx, galleryID, s.gc).Return(errors.New("storage down")).Once()
	s.repo.On("SoftDeleteEvent", s.ctx, id).Return(nil).Once()

	s.NoError(s.svc.Delete(s.ctx, id))
}

func (s *EventServiceSuite) TestGetMissing() {
	id := uuid.New()
	s.repo.On("GetEventByID", s.ctx, id).Return(models.Event{}, storage.ErrNotFound).Once()

	_, err := s.svc.Get(s.ctx, id)

	s.ErrorIs(err, storage.ErrNotFound)
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEventRepository)
	galleries := new(MockGalleryManager)
	svc := NewEventService(slogdiscard.NewDiscardLogger(), repo, galleries)
	venueID := uuid.New()

	repo.On("ListEvents", ctx, models.EventFilter{Limit: 5, Offset: 5, Page: 2, VenueID: &venueID}).
		Return([]models.Event{{Title: "a"}}, 11, nil).Once()

	events, page, err := svc.List(ctx, models.EventFilter{Limit: 5, Page: 2, VenueID: &venueID})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotNil(t, events[0].Images)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 5, Total: 11, TotalPages: 3, HasNext: true, HasPrev: true}, page)
	repo.AssertExpectations(t)
}
