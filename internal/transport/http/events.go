package http

import (
	"log/slog"
	"net/http"

	"edge_api/internal/domain/models"
	"edge_api/internal/transport/http/dto"
	"edge_api/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListEvents godoc
// @Summary Список событий
// @Tags events
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Param page query int false "Номер страницы"
// @Param search query string false "Поиск по title и description"
// @Param venue_id query string false "UUID площадки" format(uuid)
// @Param from query string false "starts_at от"
// @Param to query string false "starts_at до"
// @Success 200 {object} response.Response{data=[]models.Event,meta=models.Pagination}
// @Router /api/v1/events [get]
func (r *Routers) ListEvents(c echo.Context) error {
	const op = "http.routers.ListEvents"

	log := r.log.With(
		slog.String("op", op),
	)

	filter := models.EventFilter{
		Limit:   queryInt(c, "limit"),
		Offset:  queryInt(c, "offset"),
		Page:    queryInt(c, "page"),
		Search:  c.QueryParam("search"),
		VenueID: queryUUID(c, "venue_id"),
		From:    queryTime(c, "from"),
		To:      queryTime(c, "to"),
	}

	events, page, err := r.EventService.List(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta(events, page))
}

// GetEvent godoc
// @Summary Событие по id
// @Tags events
// @Produce json
// @Param id path string true "UUID события" format(uuid)
// @Success 200 {object} response.Response{data=models.Event}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/events/{id} [get]
func (r *Routers) GetEvent(c echo.Context) error {
	const op = "http.routers.GetEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	event, err := r.EventService.Get(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

// CreateEvent godoc
// @Summary Создание события
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Событие"
// @Success 201 {object} response.Response{data=models.Event}
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events [post]
func (r *Routers) CreateEvent(c echo.Context) error {
	const op = "http.routers.CreateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	event, batch, err := r.EventService.Create(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessWithMeta(event, galleryMeta(batch)))
}

// UpdateEvent godoc
// @Summary Обновление события
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "UUID события" format(uuid)
// @Param request body dto.UpdateEventRequest true "Изменения"
// @Success 200 {object} response.Response{data=models.Event}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events/{id} [put]
func (r *Routers) UpdateEvent(c echo.Context) error {
	const op = "http.routers.UpdateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	event, batch, err := r.EventService.Update(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta(event, galleryMeta(batch)))
}

// DeleteEvent godoc
// @Summary Удаление события вместе с галереей
// @Tags events
// @Produce json
// @Param id path string true "UUID события" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events/{id} [delete]
func (r *Routers) DeleteEvent(c echo.Context) error {
	const op = "http.routers.DeleteEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := r.EventService.Delete(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Event deleted",
	})
}
