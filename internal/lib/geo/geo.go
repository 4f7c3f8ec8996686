// Package geo грубая пространственная фильтрация: ячейки H3 фиксированного
// разрешения и ограничивающий прямоугольник.
package geo

import (
	"math"

	"edge_api/internal/domain/models"

	"github.com/uber/h3-go/v4"
)

const (
	Resolution = 9

	// EarthRadius радиус Земли в метрах
	EarthRadius = 6371e3

	// cellEdge приблизительный шаг кольца на разрешении 9, м
	cellEdge = 140

	maxRadiusForH3 = 5000
	maxCells       = 50
)

// Cell ячейка H3 для точки
func Cell(lat, lng float64) string {
	return h3.LatLngToCell(h3.NewLatLng(lat, lng), Resolution).String()
}

// KForRadius число колец, покрывающих радиус в метрах
func KForRadius(radiusM float64) int {
	return int(math.Ceil(radiusM / cellEdge))
}

// TooLargeForH3 радиус слишком велик для перечисления ячеек
func TooLargeForH3(radiusM float64) bool {
	if radiusM > maxRadiusForH3 {
		return true
	}

	k := float64(KForRadius(radiusM))

	return math.Pi*k*k > maxCells
}

// Disk ячейки в пределах k колец вокруг точки
func Disk(lat, lng float64, k int) []string {
	center := h3.LatLngToCell(h3.NewLatLng(lat, lng), Resolution)

	cells := center.GridDisk(k)
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.String())
	}

	return out
}

// BoundingBox прямоугольник вокруг точки с радиусом r метров
func BoundingBox(lat, lon, r float64) models.BBox {
	dLat := (r / EarthRadius) * (180 / math.Pi)
	dLon := (r / (EarthRadius * math.Cos(lat*math.Pi/180))) * (180 / math.Pi)

	return models.BBox{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLon: lon - dLon,
		MaxLon: lon + dLon,
	}
}
