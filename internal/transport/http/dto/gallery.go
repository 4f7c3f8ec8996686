package dto

import (
	"edge_api/internal/domain/models"

	"github.com/google/uuid"
)

// CreateGalleryRequest создание галереи владельца
type CreateGalleryRequest struct {
	Images []string `json:"images"` // base64 или data-URI
}

// UpdateGalleryRequest сначала удаляются DeletedImageIDs, затем добавляются Images
type UpdateGalleryRequest struct {
	Images          []string    `json:"images"`
	DeletedImageIDs []uuid.UUID `json:"deleted_image_ids"`
}

// ImageResultResponse исход обработки одного изображения
type ImageResultResponse struct {
	Index   int        `json:"index"`
	ImageID *uuid.UUID `json:"image_id,omitempty"`
	Status  string     `json:"status"`         // ok или skipped
	Code    string     `json:"code,omitempty"` // код ошибки для skipped
}

type GalleryBatchResponse struct {
	GalleryID uuid.UUID               `json:"gallery_id"`
	Images    []models.ProcessedImage `json:"images"`
	Results   []ImageResultResponse   `json:"results"`
}

func NewImageResults(results ...[]models.ImageResult) []ImageResultResponse {
	out := []ImageResultResponse{}
	for _, group := range results {
		for _, r := range group {
			item := ImageResultResponse{Index: r.Index, Status: "ok"}
			if r.ImageID != uuid.Nil {
				id := r.ImageID
				item.ImageID = &id
			}
			if !r.OK() {
				item.Status = "skipped"
				item.Code = string(r.Kind)
			}
			out = append(out, item)
		}
	}
	return out
}

func NewGalleryBatchResponse(batch models.GalleryBatch) GalleryBatchResponse {
	images := batch.Images
	if images == nil {
		images = []models.ProcessedImage{}
	}

	return GalleryBatchResponse{
		GalleryID: batch.GalleryID,
		Images:    images,
		Results:   NewImageResults(batch.Removals, batch.Uploads),
	}
}

type GalleryDeleteRequest struct {
	GalleryID uuid.UUID   `json:"gallery_id" validate:"required"`
	ImageIDs  []uuid.UUID `json:"image_ids" validate:"required,min=1"`
}

type UploadResponse struct {
	models.UploadSummary
	Results []ImageResultResponse `json:"results"`
}
