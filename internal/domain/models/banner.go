package models

import (
	"time"
)

const BannersBucket = "banners-images"

// Banner рекламный баннер со счётчиками показов и кликов
type Banner struct {
	Base
	BannerImagePath *string    `json:"banner_image_path"`
	RedirectLink    *string    `json:"redirect_link"`
	Active          *bool      `json:"active"`
	ExpirationDate  *time.Time `json:"expiration_date"`
	CurrentDisplays *int64     `json:"current_displays"`
	CurrentClicks   *int64     `json:"current_clicks"`
	MaxDisplays     *int64     `json:"max_displays"`
	MaxClicks       *int64     `json:"max_clicks"`

	// ImageURL вычисляется из BannerImagePath, в таблице не хранится
	ImageURL string `json:"image_url,omitempty"`
}

// Counter возвращает состояние выбранного счётчика
func (b Banner) Counter(name CounterName) CounterState {
	switch name {
	case CounterClicks:
		return CounterState{Current: b.CurrentClicks, Max: b.MaxClicks, Active: b.Active}
	default:
		return CounterState{Current: b.CurrentDisplays, Max: b.MaxDisplays, Active: b.Active}
	}
}

type BannerFilter struct {
	Limit              int
	Offset             int
	Page               int
	Search             string
	Active             *bool
	ExpirationDate     *time.Time
	ExpirationDateFrom *time.Time
	ExpirationDateTo   *time.Time
}

// CounterName имя счётчика с ограничением
type CounterName string

const (
	CounterDisplays CounterName = "displays"
	CounterClicks   CounterName = "clicks"
)

func (n CounterName) Valid() bool {
	return n == CounterDisplays || n == CounterClicks
}

// Column колонка текущего значения
func (n CounterName) Column() string {
	return "current_" + string(n)
}

// CapColumn колонка лимита
func (n CounterName) CapColumn() string {
	return "max_" + string(n)
}

// CounterState прочитанное значение счётчика. nil в Current и Max означает 0,
// Max == 0 означает отсутствие лимита.
type CounterState struct {
	Current *int64
	Max     *int64
	Active  *bool
}

func (s CounterState) Value() int64 {
	if s.Current == nil {
		return 0
	}
	return *s.Current
}

func (s CounterState) Cap() int64 {
	if s.Max == nil {
		return 0
	}
	return *s.Max
}

// Deactivated true только если active явно false
func (s CounterState) Deactivated() bool {
	return s.Active != nil && !*s.Active
}
