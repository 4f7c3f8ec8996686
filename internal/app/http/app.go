package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"edge_api/internal/middleware"
	httprouters "edge_api/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	auth      echo.MiddlewareFunc
	host      string
	port      string
	staticDir string
}

// New настраивает echo. staticDir непустой только для локального хранилища:
// файлы раздаются по тому же пути, что и публичные URL Supabase.
func New(log *slog.Logger, host, port string, timeout time.Duration, routers *httprouters.Routers, auth echo.MiddlewareFunc, staticDir string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(echomw.CORS())
	e.Use(echomw.Recover())
	e.Use(middleware.PrometheusMetrics)

	if timeout > 0 {
		e.Use(echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
			Timeout: timeout,
		}))
	}

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:       log,
		e:         e,
		routers:   routers,
		auth:      auth,
		host:      host,
		port:      port,
		staticDir: staticDir,
	}
}

// Echo для тестов маршрутов
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("port", s.port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.host, s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	if s.staticDir != "" {
		s.e.Static("/storage/v1/object/public", s.staticDir)
	}

	api := s.e.Group("/api/v1")

	bannerGroup := api.Group("/banners")
	{
		bannerGroup.GET("", s.routers.ListBanners)
		bannerGroup.POST("", s.routers.CreateBanner, s.auth)

		for _, path := range []string{"/increment-displays", "/increment-displays/:id"} {
			bannerGroup.GET(path, s.routers.IncrementDisplays)
			bannerGroup.POST(path, s.routers.IncrementDisplays)
		}
		for _, path := range []string{"/increment-clicks", "/increment-clicks/:id"} {
			bannerGroup.GET(path, s.routers.IncrementClicks)
			bannerGroup.POST(path, s.routers.IncrementClicks)
		}

		bannerGroup.GET("/:id", s.routers.GetBanner)
		bannerGroup.PUT("/:id", s.routers.UpdateBanner, s.auth)
		bannerGroup.DELETE("/:id", s.routers.DeleteBanner, s.auth)
	}

	galleriesGroup := api.Group("/galleries/:owner_type")
	{
		galleriesGroup.POST("", s.routers.CreateGallery, s.auth)
		galleriesGroup.GET("/:gallery_id/images", s.routers.GetGalleryImages)
		galleriesGroup.PATCH("/:gallery_id", s.routers.UpdateGallery, s.auth)
		galleriesGroup.DELETE("/:gallery_id", s.routers.DeleteGallery, s.auth)
	}

	galleryGroup := api.Group("/gallery")
	{
		galleryGroup.POST("/upload", s.routers.UploadGalleryImages, s.auth)
		galleryGroup.DELETE("/delete", s.routers.DeleteGalleryImages, s.auth)
		galleryGroup.GET("/:gallery_id", s.routers.GetGallery)
		galleryGroup.GET("/:gallery_id/images", s.routers.GetGallery)
	}

	venueGroup := api.Group("/venues")
	{
		venueGroup.GET("", s.routers.ListVenues)
		venueGroup.POST("", s.routers.CreateVenue, s.auth)
		venueGroup.POST("/h3/backfill", s.routers.BackfillVenueH3, s.auth)
		venueGroup.GET("/h3/stats", s.routers.VenueH3Stats)
		venueGroup.GET("/:id", s.routers.GetVenue)
		venueGroup.PUT("/:id", s.routers.UpdateVenue, s.auth)
		venueGroup.PATCH("/:id", s.routers.UpdateVenue, s.auth)
		venueGroup.DELETE("/:id", s.routers.DeleteVenue, s.auth)
	}

	eventGroup := api.Group("/events")
	{
		eventGroup.GET("", s.routers.ListEvents)
		eventGroup.POST("", s.routers.CreateEvent, s.auth)
		eventGroup.GET("/:id", s.routers.GetEvent)
		eventGroup.PUT("/:id", s.routers.UpdateEvent, s.auth)
		eventGroup.PATCH("/:id", s.routers.UpdateEvent, s.auth)
		eventGroup.DELETE("/:id", s.routers.DeleteEvent, s.auth)
	}
}
