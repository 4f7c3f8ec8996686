package http

import (
	"log/slog"
	"net/http"

	"edge_api/internal/domain/models"
	"edge_api/internal/transport/http/dto"
	"edge_api/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// galleryMeta мета-блок с исходами обработки изображений
func galleryMeta(batch models.GalleryBatch) map[string]interface{} {
	return map[string]interface{}{
		"gallery_results": dto.NewImageResults(batch.Removals, batch.Uploads),
	}
}

// ListVenues godoc
// @Summary Список площадок
// @Description При nearby=true или orderBy=distance и заданных координатах применяется пространственный фильтр
// @Tags venues
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Param page query int false "Номер страницы"
// @Param search query string false "Поиск по name и description"
// @Param is_active query bool false "Фильтр по is_active"
// @Param venue_category_id query []string false "Категории (пересечение)"
// @Param nearby query bool false "Поиск рядом"
// @Param orderBy query string false "distance"
// @Param location_latitude query number false "Широта"
// @Param location_longitude query number false "Долгота"
// @Param radius_km query number false "Радиус, км (30 для nearby, 500 для distance)"
// @Success 200 {object} response.Response{data=[]models.Venue,meta=models.Pagination}
// @Router /api/v1/venues [get]
func (r *Routers) ListVenues(c echo.Context) error {
	const op = "http.routers.ListVenues"

	log := r.log.With(
		slog.String("op", op),
	)

	filter := models.VenueFilter{
		Limit:           queryInt(c, "limit"),
		Offset:          queryInt(c, "offset"),
		Page:            queryInt(c, "page"),
		Search:          c.QueryParam("search"),
		IsActive:        queryBool(c, "is_active"),
		VenueCategoryID: queryList(c, "venue_category_id"),
		OrderBy:         c.QueryParam("orderBy"),
		Latitude:        queryFloat(c, "location_latitude"),
		Longitude:       queryFloat(c, "location_longitude"),
	}
	if nearby := queryBool(c, "nearby"); nearby != nil {
		filter.Nearby = *nearby
	}
	if radius := queryFloat(c, "radius_km"); radius != nil {
		filter.RadiusKm = *radius
	}

	venues, page, err := r.VenueService.List(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta(venues, page))
}

// GetVenue godoc
// @Summary Площадка по id
// @Tags venues
// @Produce json
// @Param id path string true "UUID площадки" format(uuid)
// @Success 200 {object} response.Response{data=models.Venue}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/venues/{id} [get]
func (r *Routers) GetVenue(c echo.Context) error {
	const op = "http.routers.GetVenue"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	venue, err := r.VenueService.Get(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(venue))
}

// CreateVenue godoc
// @Summary Создание площадки
// @Description Галерея создается всегда, ячейка H3 вычисляется при наличии координат
// @Tags venues
// @Accept json
// @Produce json
// @Param request body dto.CreateVenueRequest true "Площадка"
// @Success 201 {object} response.Response{data=models.Venue}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/venues [post]
func (r *Routers) CreateVenue(c echo.Context) error {
	const op = "http.routers.CreateVenue"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	venue, batch, err := r.VenueService.Create(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessWithMeta(venue, galleryMeta(batch)))
}

// UpdateVenue godoc
// @Summary Обновление площадки
// @Description gallery_images добавляются, deleted_images удаляются из галереи
// @Tags venues
// @Accept json
// @Produce json
// @Param id path string true "UUID площадки" format(uuid)
// @Param request body dto.UpdateVenueRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Venue}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/venues/{id} [put]
func (r *Routers) UpdateVenue(c echo.Context) error {
	const op = "http.routers.UpdateVenue"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.UpdateVenueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	venue, batch, err := r.VenueService.Update(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta(venue, galleryMeta(batch)))
}

// DeleteVenue godoc
// @Summary Удаление площадки вместе с галереей
// @Tags venues
// @Produce json
// @Param id path string true "UUID площадки" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/venues/{id} [delete]
func (r *Routers) DeleteVenue(c echo.Context) error {
	const op = "http.routers.DeleteVenue"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := r.VenueService.Delete(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Venue deleted",
	})
}

// BackfillVenueH3 godoc
// @Summary Заполнение H3 для площадок без ячейки
// @Tags venues
// @Produce json
// @Success 200 {object} response.Response{data=models.H3BackfillResult}
// @Security BearerAuth
// @Router /api/v1/venues/h3/backfill [post]
func (r *Routers) BackfillVenueH3(c echo.Context) error {
	const op = "http.routers.BackfillVenueH3"

	log := r.log.With(
		slog.String("op", op),
	)

	res, err := r.VenueService.BackfillH3(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(res))
}

// VenueH3Stats godoc
// @Summary Покрытие площадок ячейками H3
// @Tags venues
// @Produce json
// @Success 200 {object} response.Response{data=models.H3CoverageStats}
// @Router /api/v1/venues/h3/stats [get]
func (r *Routers) VenueH3Stats(c echo.Context) error {
	const op = "http.routers.VenueH3Stats"

	log := r.log.With(
		slog.String("op", op),
	)

	stats, err := r.VenueService.H3Stats(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(stats))
}
