package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/logger/handlers/slogdiscard"
	"edge_api/internal/storage"
	httprouters "edge_api/internal/transport/http"
	"edge_api/internal/transport/http/dto"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockBannerService struct {
	mock.Mock
}

func (m *MockBannerService) List(ctx context.Context, f models.BannerFilter) ([]models.Banner, models.Pagination, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Banner), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockBannerService) Get(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Banner), args.Error(1)
}

func (m *MockBannerService) Create(ctx context.Context, req dto.BannerRequest) (models.Banner, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Banner), args.Error(1)
}

func (m *MockBannerService) Update(ctx context.Context, id uuid.UUID, req dto.BannerRequest) (models.Banner, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Banner), args.Error(1)
}

func (m *MockBannerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBannerService) IncrementDisplays(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Banner), args.Error(1)
}

func (m *MockBannerService) IncrementClicks(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Banner), args.Error(1)
}

type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) ProcessGalleryData(ctx context.Context, images []string, gc models.GalleryContext) (models.GalleryBatch, error) {
	args := m.Called(ctx, images, gc)
	return args.Get(0).(models.GalleryBatch), args.Error(1)
}

func (m *MockGalleryService) GetGalleryImages(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) []models.ProcessedImage {
	args := m.Called(ctx, galleryID, gc)
	return args.Get(0).([]models.ProcessedImage)
}

func (m *MockGalleryService) UpdateGalleryWithImages(ctx context.Context, galleryID uuid.UUID, newImages []string, deletedIDs []uuid.UUID, gc models.GalleryContext) (models.GalleryBatch, error) {
	args := m.Called(ctx, galleryID, newImages, deletedIDs, gc)
	return args.Get(0).(models.GalleryBatch), args.Error(1)
}

func (m *MockGalleryService) DeleteGallery(ctx context.Context, galleryID uuid.UUID, gc models.GalleryContext) error {
	args := m.Called(ctx, galleryID, gc)
	return args.Error(0)
}

type MockGalleryImagesService struct {
	mock.Mock
}

func (m *MockGalleryImagesService) Upload(ctx context.Context, req models.GalleryUpload) (models.UploadSummary, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.UploadSummary), args.Error(1)
}

func (m *MockGalleryImagesService) Delete(ctx context.Context, galleryID uuid.UUID, imageIDs []uuid.UUID) (models.DeleteSummary, error) {
	args := m.Called(ctx, galleryID, imageIDs)
	return args.Get(0).(models.DeleteSummary), args.Error(1)
}

func (m *MockGalleryImagesService) Get(ctx context.Context, galleryID uuid.UUID) (models.GalleryView, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).(models.GalleryView), args.Error(1)
}

type MockVenueService struct {
	mock.Mock
}

func (m *MockVenueService) List(ctx context.Context, f models.VenueFilter) ([]models.Venue, models.Pagination, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Venue), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockVenueService) Get(ctx context.Context, id uuid.UUID) (models.Venue, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Venue), args.Error(1)
}

func (m *MockVenueService) Create(ctx context.Context, req dto.CreateVenueRequest) (models.Venue, models.GalleryBatch, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Venue), args.Get(1).(models.GalleryBatch), args.Error(2)
}

func (m *MockVenueService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVenueRequest) (models.Venue, models.GalleryBatch, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Venue), args.Get(1).(models.GalleryBatch), args.Error(2)
}

func (m *MockVenueService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVenueService) BackfillH3(ctx context.Context) (models.H3BackfillResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.H3BackfillResult), args.Error(1)
}

func (m *MockVenueService) H3Stats(ctx context.Context) (models.H3CoverageStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.H3CoverageStats), args.Error(1)
}

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) List(ctx context.Context, f models.EventFilter) ([]models.Event, models.Pagination, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Event), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockEventService) Get(ctx context.Context, id uuid.UUID) (models.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, req dto.CreateEventRequest) (models.Event, models.GalleryBatch, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Event), args.Get(1).(models.GalleryBatch), args.Error(2)
}

func (m *MockEventService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, models.GalleryBatch, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Event), args.Get(1).(models.GalleryBatch), args.Error(2)
}

func (m *MockEventService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                        { return s.name }
func (s stubChecker) HealthCheck(_ context.Context) error { return s.err }

type structValidator struct {
	v *validator.Validate
}

func (sv *structValidator) Validate(i interface{}) error {
	return sv.v.Struct(i)
}

type HandlersSuite struct {
	suite.Suite

	e             *echo.Echo
	banners       *MockBannerService
	galleries     *MockGalleryService
	galleryImages *MockGalleryImagesService
	venues        *MockVenueService
	events        *MockEventService
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	s.banners = new(MockBannerService)
	s.galleries = new(MockGalleryService)
	s.galleryImages = new(MockGalleryImagesService)
	s.venues = new(MockVenueService)
	s.events = new(MockEventService)

	s.e = s.newEcho(stubChecker{name: "postgres"}, stubChecker{name: "redis"})
}

func (s *HandlersSuite) newEcho(checkers ...httprouters.HealthChecker) *echo.Echo {
	r := httprouters.NewRouter(slogdiscard.NewDiscardLogger(), s.banners, s.galleries, s.galleryImages, s.venues, s.events, checkers...)

	e := echo.New()
	e.Validator = &structValidator{v: validator.New()}

	e.GET("/health", r.Health)

	banners := e.Group("/api/v1/banners")
	banners.GET("", r.ListBanners)
	banners.POST("", r.CreateBanner)
	banners.GET("/increment-displays", r.IncrementDisplays)
	banners.POST("/increment-displays", r.IncrementDisplays)
	banners.POST("/increment-displays/:id", r.IncrementDisplays)
	banners.POST("/increment-clicks", r.IncrementClicks)
	banners.GET("/:id", r.GetBanner)

	galleries := e.Group("/api/v1/galleries/:owner_type")
	galleries.POST("", r.CreateGallery)
	galleries.PATCH("/:gallery_id", r.UpdateGallery)
	galleries.DELETE("/:gallery_id", r.DeleteGallery)

	gallery := e.Group("/api/v1/gallery")
	gallery.POST("/upload", r.UploadGalleryImages)
	gallery.DELETE("/delete", r.DeleteGalleryImages)

	venues := e.Group("/api/v1/venues")
	venues.GET("", r.ListVenues)
	venues.POST("", r.CreateVenue)
	venues.GET("/h3/stats", r.VenueH3Stats)

	events := e.Group("/api/v1/events")
	events.GET("/:id", r.GetEvent)

	return e
}

func (s *HandlersSuite) TearDownTest() {
	s.banners.AssertExpectations(s.T())
	s.galleries.AssertExpectations(s.T())
	s.galleryImages.AssertExpectations(s.T())
	s.venues.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func (s *HandlersSuite) do(method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return rec, out
}

func (s *HandlersSuite) TestIncrementIDSources() {
	id := uuid.New()

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "path", method: http.MethodPost, target: "/api/v1/banners/increment-displays/" + id.String()},
		{name: "query", method: http.MethodGet, target: "/api/v1/banners/increment-displays?id=" + id.String()},
		{name: "json body", method: http.MethodPost, target: "/api/v1/banners/increment-displays", body: fmt.Sprintf(`{"id":%q}`, id)},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.banners.On("IncrementDisplays", mock.Anything, id).
				Return(models.Banner{Base: models.Base{ID: id}}, nil).Once()

			rec, out := s.do(tt.method, tt.target, tt.body)

			s.Equal(http.StatusOK, rec.Code)
			s.Equal("success", out["status"])
			s.Equal(id.String(), out["data"].(map[string]interface{})["id"])
		})
	}
}

func (s *HandlersSuite) TestIncrementMissingID() {
	tests := []struct {
		name     string
		target   string
		body     string
		wantCode string
	}{
		{name: "displays without id", target: "/api/v1/banners/increment-displays", wantCode: "BANNERS_INCREMENT_DISPLAYS_MISSING_ID"},
		{name: "clicks with empty body", target: "/api/v1/banners/increment-clicks", body: `{}`, wantCode: "BANNERS_INCREMENT_CLICKS_MISSING_ID"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec, out := s.do(http.MethodPost, tt.target, tt.body)

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tt.wantCode, out["error"])
		})
	}
}

func (s *HandlersSuite) TestIncrementErrors() {
	id := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "retry limit", err: fmt.Errorf("retry limit reached: %w", storage.ErrConflict), wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "missing banner", err: fmt.Errorf("failed to read counter: %w", storage.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "database down", err: errors.New("conn refused"), wantStatus: http.StatusInternalServerError, wantCode: "UNEXPECTED"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.banners.On("IncrementDisplays", mock.Anything, id).Return(models.Banner{}, tt.err).Once()

			rec, out := s.do(http.MethodPost, "/api/v1/banners/increment-displays/"+id.String(), "")

			s.Equal(tt.wantStatus, rec.Code)
			s.Equal(tt.wantCode, out["error"])
		})
	}
}

func (s *HandlersSuite) TestIncrementInvalidID() {
	rec, out := s.do(http.MethodPost, "/api/v1/banners/increment-displays/not-a-uuid", "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", out["error"])
}

func (s *HandlersSuite) TestListBannersParsesFilters() {
	active := true

	s.banners.On("List", mock.Anything, mock.MatchedBy(func(f models.BannerFilter) bool {
		return f.Limit == 10 && f.Page == 2 && f.Search == "promo" &&
			f.Active != nil && *f.Active == active &&
			f.ExpirationDateFrom != nil && f.ExpirationDateFrom.Format("2006-01-02") == "2025-01-31"
	})).Return([]models.Banner{{}}, models.NewPagination(2, 10, 11), nil).Once()

	rec, out := s.do(http.MethodGet, "/api/v1/banners?limit=10&page=2&search=promo&active=true&expiration_date_from=2025-01-31", "")

	s.Equal(http.StatusOK, rec.Code)
	meta := out["meta"].(map[string]interface{})
	s.Equal(float64(2), meta["totalPages"])
	s.Equal(true, meta["hasPrev"])
}

func (s *HandlersSuite) TestGetBannerNotFound() {
	id := uuid.New()
	s.banners.On("Get", mock.Anything, id).Return(models.Banner{}, storage.ErrNotFound).Once()

	rec, out := s.do(http.MethodGet, "/api/v1/banners/"+id.String(), "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_FOUND", out["error"])
}

func (s *HandlersSuite) TestCreateBanner() {
	link := gofakeit.URL()

	s.Run("valid", func() {
		s.banners.On("Create", mock.Anything, mock.MatchedBy(func(req dto.BannerRequest) bool {
			return req.RedirectLink != nil && *req.RedirectLink == link
		})).Return(models.Banner{RedirectLink: &link}, nil).Once()

		rec, _ := s.do(http.MethodPost, "/api/v1/banners", fmt.Sprintf(`{"redirect_link":%q}`, link))

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("invalid link", func() {
		rec, out := s.do(http.MethodPost, "/api/v1/banners", `{"redirect_link":"not a url"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("VALIDATION_ERROR", out["error"])
	})

	s.Run("negative cap", func() {
		rec, _ := s.do(http.MethodPost, "/api/v1/banners", `{"max_clicks":-1}`)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlersSuite) TestGalleryOwnerType() {
	galleryID := uuid.New()
	imageID := uuid.New()
	venues := models.ContextFor(models.OwnerVenues)

	s.Run("unknown owner uses venues context", func() {
		s.galleries.On("DeleteGallery", mock.Anything, galleryID, venues).Return(nil).Once()

		rec, out := s.do(http.MethodDelete, "/api/v1/galleries/planets/"+galleryID.String(), "")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("success", out["status"])
	})

	s.Run("results per image", func() {
		s.galleries.On("ProcessGalleryData", mock.Anything, []string{"AAAA", "!!"}, venues).
			Return(models.GalleryBatch{
				GalleryID: galleryID,
				Images:    []models.ProcessedImage{{ID: imageID}},
				Uploads: []models.ImageResult{
					{Index: 0, ImageID: imageID},
					{Index: 1, Kind: models.KindDecode, Err: storage.ErrDecode},
				},
			}, nil).Once()

		rec, out := s.do(http.MethodPost, "/api/v1/galleries/venues", `{"images":["AAAA","!!"]}`)

		s.Equal(http.StatusCreated, rec.Code)
		results := out["data"].(map[string]interface{})["results"].([]interface{})
		s.Require().Len(results, 2)
		s.Equal("ok", results[0].(map[string]interface{})["status"])
		s.Equal("skipped", results[1].(map[string]interface{})["status"])
		s.Equal("DECODE_ERROR", results[1].(map[string]interface{})["code"])
	})

	s.Run("update missing gallery", func() {
		s.galleries.On("UpdateGalleryWithImages", mock.Anything, galleryID, []string(nil), []uuid.UUID{imageID}, models.ContextFor(models.OwnerEvents)).
			Return(models.GalleryBatch{}, fmt.Errorf("failed to get gallery: %w", storage.ErrNotFound)).Once()

		rec, _ := s.do(http.MethodPatch, "/api/v1/galleries/events/"+galleryID.String(),
			fmt.Sprintf(`{"deleted_image_ids":[%q]}`, imageID))

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlersSuite) TestUploadLimitDetails() {
	s.galleryImages.On("Upload", mock.Anything, mock.Anything).
		Return(models.UploadSummary{}, storage.NewValidationError("too many images").
			WithDetails(map[string]interface{}{"current_count": 5, "max_allowed": 6})).Once()

	rec, out := s.do(http.MethodPost, "/api/v1/gallery/upload", `{"images":[{"file_data":"AAAA","file_name":"a.jpg","mime_type":"image/jpeg"}]}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	details := out["details"].(map[string]interface{})
	s.Equal(float64(5), details["current_count"])
	s.Equal(float64(6), details["max_allowed"])
}

func (s *HandlersSuite) TestDeleteGalleryImages() {
	galleryID := uuid.New()
	imageID := uuid.New()

	s.Run("empty ids rejected", func() {
		rec, _ := s.do(http.MethodDelete, "/api/v1/gallery/delete", fmt.Sprintf(`{"gallery_id":%q,"image_ids":[]}`, galleryID))

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("last image kept", func() {
		s.galleryImages.On("Delete", mock.Anything, galleryID, []uuid.UUID{imageID}).
			Return(models.DeleteSummary{}, storage.NewValidationError("gallery must keep at least one image").
				WithDetails(map[string]interface{}{"min_images": 1})).Once()

		rec, out := s.do(http.MethodDelete, "/api/v1/gallery/delete",
			fmt.Sprintf(`{"gallery_id":%q,"image_ids":[%q]}`, galleryID, imageID))

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(float64(1), out["details"].(map[string]interface{})["min_images"])
	})
}

func (s *HandlersSuite) TestListVenuesSpatialParams() {
	s.venues.On("List", mock.Anything, mock.MatchedBy(func(f models.VenueFilter) bool {
		return f.Nearby && f.RadiusKm == 2.5 &&
			f.Latitude != nil && *f.Latitude == 41.38 &&
			f.Longitude != nil && *f.Longitude == 2.17 &&
			len(f.VenueCategoryID) == 3
	})).Return([]models.Venue{}, models.NewPagination(1, 20, 0), nil).Once()

	rec, _ := s.do(http.MethodGet,
		"/api/v1/venues?nearby=true&location_latitude=41.38&location_longitude=2.17&radius_km=2.5&venue_category_id=a,b&venue_category_id=c", "")

	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlersSuite) TestCreateVenueRequiresName() {
	rec, out := s.do(http.MethodPost, "/api/v1/venues", `{"description":"no name"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", out["error"])
}

func (s *HandlersSuite) TestCreateVenueReportsGalleryResults() {
	name := gofakeit.Company()

	s.venues.On("Create", mock.Anything, mock.MatchedBy(func(req dto.CreateVenueRequest) bool {
		return req.Name == name
	})).Return(models.Venue{Name: name}, models.GalleryBatch{
		Uploads: []models.ImageResult{{Index: 0, Kind: models.KindUpload, Err: storage.ErrUpload}},
	}, nil).Once()

	rec, out := s.do(http.MethodPost, "/api/v1/venues", fmt.Sprintf(`{"name":%q,"gallery_images":["AAAA"]}`, name))

	s.Equal(http.StatusCreated, rec.Code)
	results := out["meta"].(map[string]interface{})["gallery_results"].([]interface{})
	s.Require().Len(results, 1)
	s.Equal("UPLOAD_ERROR", results[0].(map[string]interface{})["code"])
}

func (s *HandlersSuite) TestVenueH3Stats() {
	s.venues.On("H3Stats", mock.Anything).Return(models.H3CoverageStats{
		TotalVenues: 10, VenuesWithCoordinates: 8, VenuesWithH3: 6, CoveragePercentage: 75,
	}, nil).Once()

	rec, out := s.do(http.MethodGet, "/api/v1/venues/h3/stats", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(float64(75), out["data"].(map[string]interface{})["coverage_percentage"])
}

func (s *HandlersSuite) TestGetEventInvalidID() {
	rec, _ := s.do(http.MethodGet, "/api/v1/events/123", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersSuite) TestHealth() {
	s.Run("all up", func() {
		rec, out := s.do(http.MethodGet, "/health", "")

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("ok", out["data"].(map[string]interface{})["redis"])
	})

	s.Run("redis down", func() {
		s.e = s.newEcho(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: errors.New("timeout")})

		rec, out := s.do(http.MethodGet, "/health", "")

		s.Equal(http.StatusServiceUnavailable, rec.Code)
		s.Equal("error", out["status"])
		s.Equal("unavailable", out["data"].(map[string]interface{})["redis"])
	})
}
