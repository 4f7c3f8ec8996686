package http

import (
	"log/slog"
	"net/http"

	"edge_api/internal/domain/models"
	"edge_api/internal/transport/http/dto"
	"edge_api/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ownerContext контекст хранения по :owner_type, неизвестный тип работает как venues
func ownerContext(c echo.Context, log *slog.Logger) models.GalleryContext {
	owner := models.OwnerType(c.Param("owner_type"))
	if !models.KnownOwner(owner) {
		log.Debug("unknown owner type, using venues context", slog.String("owner_type", string(owner)))
	}
	return models.ContextFor(owner)
}

// CreateGallery godoc
// @Summary Создание галереи владельца
// @Description Каждое изображение обрабатывается отдельно, пропущенные перечислены в results
// @Tags galleries
// @Accept json
// @Produce json
// @Param owner_type path string true "Тип владельца"
// @Param request body dto.CreateGalleryRequest true "Изображения base64"
// @Success 201 {object} response.Response{data=dto.GalleryBatchResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/galleries/{owner_type} [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	const op = "http.routers.CreateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	gc := ownerContext(c, log)

	var req dto.CreateGalleryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	batch, err := r.GalleryService.ProcessGalleryData(c.Request().Context(), req.Images, gc)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewGalleryBatchResponse(batch)))
}

// GetGalleryImages godoc
// @Summary Изображения галереи
// @Tags galleries
// @Produce json
// @Param owner_type path string true "Тип владельца"
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Success 200 {object} response.Response{data=[]models.ProcessedImage}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/galleries/{owner_type}/{gallery_id}/images [get]
func (r *Routers) GetGalleryImages(c echo.Context) error {
	gc := ownerContext(c, r.log)

	galleryID, ok := pathID(c, "gallery_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	images := r.GalleryService.GetGalleryImages(c.Request().Context(), galleryID, gc)

	return c.JSON(http.StatusOK, response.SuccessResponse(images))
}

// UpdateGallery godoc
// @Summary Изменение галереи
// @Description Сначала удаляются deleted_image_ids, затем добавляются images
// @Tags galleries
// @Accept json
// @Produce json
// @Param owner_type path string true "Тип владельца"
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Param request body dto.UpdateGalleryRequest true "Изменения"
// @Success 200 {object} response.Response{data=dto.GalleryBatchResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/galleries/{owner_type}/{gallery_id} [patch]
func (r *Routers) UpdateGallery(c echo.Context) error {
	const op = "http.routers.UpdateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	gc := ownerContext(c, log)

	galleryID, ok := pathID(c, "gallery_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.UpdateGalleryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	batch, err := r.GalleryService.UpdateGalleryWithImages(c.Request().Context(), galleryID, req.Images, req.DeletedImageIDs, gc)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewGalleryBatchResponse(batch)))
}

// DeleteGallery godoc
// @Summary Удаление галереи
// @Tags galleries
// @Produce json
// @Param owner_type path string true "Тип владельца"
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/galleries/{owner_type}/{gallery_id} [delete]
func (r *Routers) DeleteGallery(c echo.Context) error {
	const op = "http.routers.DeleteGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	gc := ownerContext(c, log)

	galleryID, ok := pathID(c, "gallery_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := r.GalleryService.DeleteGallery(c.Request().Context(), galleryID, gc); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{
		Status:  "success",
		Message: "Gallery deleted",
	})
}

// UploadGalleryImages godoc
// @Summary Загрузка изображений в галерею площадки
// @Description До 6 изображений jpeg/png/webp по 5 МБ. Галерея создается, если gallery_id не передан.
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body models.GalleryUpload true "Изображения"
// @Success 201 {object} response.Response{data=dto.UploadResponse}
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Security BearerAuth
// @Router /api/v1/gallery/upload [post]
func (r *Routers) UploadGalleryImages(c echo.Context) error {
	const op = "http.routers.UploadGalleryImages"

	log := r.log.With(
		slog.String("op", op),
	)

	var req models.GalleryUpload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	summary, err := r.GalleryImagesService.Upload(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.UploadResponse{
		UploadSummary: summary,
		Results:       dto.NewImageResults(summary.Results),
	}))
}

// DeleteGalleryImages godoc
// @Summary Удаление изображений из галереи площадки
// @Description Галерея не может остаться пустой
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body dto.GalleryDeleteRequest true "Изображения"
// @Success 200 {object} response.Response{data=models.DeleteSummary}
// @Failure 400 {object} response.ErrorResponse "VALIDATION_ERROR"
// @Failure 404 {object} response.ErrorResponse "NOT_FOUND"
// @Security BearerAuth
// @Router /api/v1/gallery/delete [delete]
func (r *Routers) DeleteGalleryImages(c echo.Context) error {
	const op = "http.routers.DeleteGalleryImages"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.GalleryDeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return invalidRequest(c, err)
	}

	summary, err := r.GalleryImagesService.Delete(c.Request().Context(), req.GalleryID, req.ImageIDs)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(summary))
}

// GetGallery godoc
// @Summary Галерея площадки с изображениями
// @Tags gallery
// @Produce json
// @Param gallery_id path string true "UUID галереи" format(uuid)
// @Success 200 {object} response.Response{data=models.GalleryView}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/gallery/{gallery_id} [get]
func (r *Routers) GetGallery(c echo.Context) error {
	const op = "http.routers.GetGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, ok := pathID(c, "gallery_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	view, err := r.GalleryImagesService.Get(c.Request().Context(), galleryID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}
