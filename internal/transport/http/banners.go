package http

import (
	"context"
	"log/slog"
	"net/http"

	"edge_api/internal/domain/models"
	"edge_api/internal/transport/http/dto"
	"edge_api/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	codeDisplaysMissingID = "BANNERS_INCREMENT_DISPLAYS_MISSING_ID"
	codeClicksMissingID   = "BANNERS_INCREMENT_CLICKS_MISSING_ID"
)

// ListBanners godoc
// @Summary Список баннеров
// @Description Неудаленные баннеры, новые первыми
// @Tags banners
// @Produce json
// @Param limit query int false "Размер страницы (1..100, по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Param page query int false "Номер страницы"
// @Param search query string false "Подстрока redirect_link"
// @Param active query bool false "Фильтр по active"
// @Param expiration_date query string false "Точная дата окончания"
// @Param expiration_date_from query string false "Дата окончания от"
// @Param expiration_date_to query string false "Дата окончания до"
// @Success 200 {object} response.Response{data=[]models.Banner,meta=models.Pagination}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/banners [get]
func (r *Routers) ListBanners(c echo.Context) error {
	const op = "http.routers.ListBanners"

	log := r.log.With(
		slog.String("op", op),
	)

	filter := models.BannerFilter{
		Limit:              queryInt(c, "limit"),
		Offset:             queryInt(c, "offset"),
		Page:               queryInt(c, "page"),
		Search:             c.QueryParam("search"),
		Active:             queryBool(c, "active"),
		ExpirationDate:     queryTime(c, "expiration_date"),
		ExpirationDateFrom: queryTime(c, "expiration_date_from"),
		ExpirationDateTo:   queryTime(c, "expiration_date_to"),
	}

	banners, page, err := r.BannerService.List(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessWithMeta(banners, page))
}

// GetBanner godoc
// @Summary Баннер по id
// @Tags banners
// @Produce json
// @Param id path string true "UUID баннера" format(uuid)
// @Success 200 {object} response.Response{data=models.Banner}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/banners/{id} [get]
func (r *Routers) GetBanner(c echo.Context) error {
	const op = "http.routers.GetBanner"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	banner, err := r.BannerService.Get(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(banner))
}

// CreateBanner godoc
// @Summary Создание баннера
// @Description image_base64 загружается в bucket banners-images
// @Tags banners
// @Accept json
// @Produce json
// @Param request body dto.BannerRequest true "Поля баннера"
// @Success 201 {object} response.Response{data=models.Banner}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/banners [post]
func (r *Routers) CreateBanner(c echo.Context) error {
	const op = "http.routers.CreateBanner"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	banner, err := r.BannerService.Create(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(banner))
}

// UpdateBanner godoc
// @Summary Частичное обновление баннера
// @Tags banners
// @Accept json
// @Produce json
// @Param id path string true "UUID баннера" format(uuid)
// @Param request body dto.BannerRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Banner}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/banners/{id} [put]
func (r *Routers) UpdateBanner(c echo.Context) error {
	const op = "http.routers.UpdateBanner"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	banner, err := r.BannerService.Update(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(banner))
}

// DeleteBanner godoc
// @Summary Мягкое удаление баннера
// @Tags banners
// @Produce json
// @Param id path string true "UUID баннера" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/banners/{id} [delete]
func (r *Routers) DeleteBanner(c echo.Context) error {
	const op = "http.routers.DeleteBanner"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := r.BannerService.Delete(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Banner deleted",
	})
}

// IncrementDisplays godoc
// @Summary Инкремент показов баннера
// @Description id берется из пути, query-параметра id или тела {id}. На лимите баннер деактивируется.
// @Tags banners
// @Accept json
// @Produce json
// @Param id path string false "UUID баннера" format(uuid)
// @Success 200 {object} response.Response{data=models.Banner}
// @Failure 400 {object} response.ErrorResponse "BANNERS_INCREMENT_DISPLAYS_MISSING_ID"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/banners/increment-displays/{id} [post]
func (r *Routers) IncrementDisplays(c echo.Context) error {
	return r.increment(c, "http.routers.IncrementDisplays", codeDisplaysMissingID, r.BannerService.IncrementDisplays)
}

// IncrementClicks godoc
// @Summary Инкремент кликов баннера
// @Description id берется из пути, query-параметра id или тела {id}. На лимите баннер деактивируется.
// @Tags banners
// @Accept json
// @Produce json
// @Param id path string false "UUID баннера" format(uuid)
// @Success 200 {object} response.Response{data=models.Banner}
// @Failure 400 {object} response.ErrorResponse "BANNERS_INCREMENT_CLICKS_MISSING_ID"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/banners/increment-clicks/{id} [post]
func (r *Routers) IncrementClicks(c echo.Context) error {
	return r.increment(c, "http.routers.IncrementClicks", codeClicksMissingID, r.BannerService.IncrementClicks)
}

type incrementFunc func(ctx context.Context, id uuid.UUID) (models.Banner, error)

func (r *Routers) increment(c echo.Context, op, missingCode string, inc incrementFunc) error {
	log := r.log.With(
		slog.String("op", op),
	)

	raw := bannerID(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, response.MissingID(missingCode))
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	banner, err := inc(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(banner))
}

// bannerID id из пути, затем из query, затем из тела
func bannerID(c echo.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}

	if id := c.QueryParam("id"); id != "" {
		return id
	}

	var body dto.IncrementRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return ""
	}

	return body.ID
}
