package dto

import (
	"time"
)

// BannerRequest тело создания и частичного обновления баннера
type BannerRequest struct {
	RedirectLink    *string    `json:"redirect_link" validate:"omitempty,url"`
	BannerImagePath *string    `json:"banner_image_path"`
	Active          *bool      `json:"active"`
	ExpirationDate  *time.Time `json:"expiration_date"`
	CurrentDisplays *int64     `json:"current_displays" validate:"omitempty,min=0"`
	CurrentClicks   *int64     `json:"current_clicks" validate:"omitempty,min=0"`
	MaxDisplays     *int64     `json:"max_displays" validate:"omitempty,min=0"` // 0 или null без лимита
	MaxClicks       *int64     `json:"max_clicks" validate:"omitempty,min=0"`
	ImageBase64     *string    `json:"image_base64"` // загружается в banners-images
}

// Updates заданные поля для частичного обновления
func (r BannerRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}

	if r.RedirectLink != nil {
		updates["redirect_link"] = *r.RedirectLink
	}
	if r.BannerImagePath != nil {
		updates["banner_image_path"] = *r.BannerImagePath
	}
	if r.Active != nil {
		updates["active"] = *r.Active
	}
	if r.ExpirationDate != nil {
		updates["expiration_date"] = *r.ExpirationDate
	}
	if r.CurrentDisplays != nil {
		updates["current_displays"] = *r.CurrentDisplays
	}
	if r.CurrentClicks != nil {
		updates["current_clicks"] = *r.CurrentClicks
	}
	if r.MaxDisplays != nil {
		updates["max_displays"] = *r.MaxDisplays
	}
	if r.MaxClicks != nil {
		updates["max_clicks"] = *r.MaxClicks
	}

	return updates
}

// IncrementRequest id баннера в теле запроса инкремента
type IncrementRequest struct {
	ID string `json:"id"`
}
