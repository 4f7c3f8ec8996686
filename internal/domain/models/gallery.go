package models

import (
	"github.com/google/uuid"
)

// Gallery коллекция изображений, принадлежащая владельцу (площадке, событию и т.д.)
type Gallery struct {
	Base
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	VenueID     *uuid.UUID `json:"venue_id,omitempty"`
}

// GalleryImage строка метаданных изображения. Порядок, is_primary и
// мягкое удаление использует только строгий вариант.
type GalleryImage struct {
	Base
	GalleryID    uuid.UUID `json:"gallery_id"`
	ImageName    string    `json:"file_name"`
	FilePath     string    `json:"file_path,omitempty"`
	FileSize     int64     `json:"file_size,omitempty"`
	MimeType     string    `json:"mime_type,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsPrimary    bool      `json:"is_primary"`
}

// ProcessedImage изображение галереи с публичным URL
type ProcessedImage struct {
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	URL      string    `json:"url"`
}

// GalleryContext пара (bucket, folderPrefix), определяющая размещение файлов
type GalleryContext struct {
	Bucket       string
	FolderPrefix string
}

// Folder папка галереи: {folderPrefix}_{galleryId}
func (c GalleryContext) Folder(galleryID uuid.UUID) string {
	return c.FolderPrefix + "_" + galleryID.String()
}

// ObjectPath путь объекта внутри bucket
func (c GalleryContext) ObjectPath(galleryID uuid.UUID, filename string) string {
	return c.Folder(galleryID) + "/" + filename
}

// OwnerType тег типа владельца галереи
type OwnerType string

const (
	OwnerVenues           OwnerType = "venues"
	OwnerEvents           OwnerType = "events"
	OwnerPartners         OwnerType = "partners"
	OwnerShops            OwnerType = "shops"
	OwnerServiceProviders OwnerType = "service_providers"
	OwnerServices         OwnerType = "services"
	OwnerVenueProducts    OwnerType = "venue_products"
)

const galleryFolderPrefix = "gallery"

var galleryContexts = map[OwnerType]GalleryContext{
	OwnerVenues:           {Bucket: "venue-galleries", FolderPrefix: galleryFolderPrefix},
	OwnerEvents:           {Bucket: "event-galleries", FolderPrefix: galleryFolderPrefix},
	OwnerPartners:         {Bucket: "partner-galleries", FolderPrefix: galleryFolderPrefix},
	OwnerShops:            {Bucket: "shop-galleries", FolderPrefix: galleryFolderPrefix},
	OwnerServiceProviders: {Bucket: "service-providers-galleries", FolderPrefix: galleryFolderPrefix},
	OwnerServices:         {Bucket: "services-galleries", FolderPrefix: galleryFolderPrefix},
	OwnerVenueProducts:    {Bucket: "venue-products-galleries", FolderPrefix: galleryFolderPrefix},
}

// ContextFor возвращает контекст типа владельца; неизвестные теги получают контекст venues
func ContextFor(owner OwnerType) GalleryContext {
	if c, ok := galleryContexts[owner]; ok {
		return c
	}
	return galleryContexts[OwnerVenues]
}

// KnownOwner сообщает, есть ли тег в таблице контекстов
func KnownOwner(owner OwnerType) bool {
	_, ok := galleryContexts[owner]
	return ok
}

// ImageResult исход обработки одного изображения в пакете.
// Kind пустой при успехе.
type ImageResult struct {
	Index   int             `json:"index"`
	ImageID uuid.UUID       `json:"image_id,omitempty"`
	Image   *ProcessedImage `json:"image,omitempty"`
	Kind    ErrorKind       `json:"code,omitempty"`
	Err     error           `json:"-"`
}

func (r ImageResult) OK() bool {
	return r.Err == nil
}

// GalleryBatch результат пакетной операции над галереей
type GalleryBatch struct {
	GalleryID uuid.UUID        `json:"gallery_id"`
	Images    []ProcessedImage `json:"images"`
	Uploads   []ImageResult    `json:"uploads,omitempty"`
	Removals  []ImageResult    `json:"removals,omitempty"`
}

// Skipped количество пропущенных элементов
func (b GalleryBatch) Skipped() int {
	n := 0
	for _, r := range b.Uploads {
		if !r.OK() {
			n++
		}
	}
	for _, r := range b.Removals {
		if !r.OK() {
			n++
		}
	}
	return n
}

// DeletionPolicy правило удаления последнего изображения
type DeletionPolicy int

const (
	// AllowEmpty галерея может стать пустой
	AllowEmpty DeletionPolicy = iota
	// KeepAtLeastOne удаление, опустошающее непустую галерею, отклоняется
	KeepAtLeastOne
)

func (p DeletionPolicy) String() string {
	switch p {
	case KeepAtLeastOne:
		return "keep_at_least_one"
	default:
		return "allow_empty"
	}
}
