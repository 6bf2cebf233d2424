package dto

import "github.com/geodistance-microservice/internal/domain"

// DistanceResponse - ответ на расчёт расстояния
type DistanceResponse struct {
	Distance      float64 `json:"distance"` // meters
	SeparationDeg float64 `json:"separation_deg"`
}

// BatchDistanceResult - результат расчёта одной пары в пакете
type BatchDistanceResult struct {
	Distance float64 `json:"distance"` // meters
	Error    string  `json:"error,omitempty"`
}

// BatchDistanceResponse - ответ на пакетный расчёт расстояний
type BatchDistanceResponse struct {
	Results []BatchDistanceResult `json:"results"`
}

// CompareResponse - сравнение приближённой формулы с точной haversine
type CompareResponse struct {
	Approximate   float64 `json:"approximate"` // meters
	Exact         float64 `json:"exact"`       // meters
	AbsoluteError float64 `json:"absolute_error"`
	RelativeError float64 `json:"relative_error"`
	SeparationDeg float64 `json:"separation_deg"`
}

// PlaceResponse - ответ с данными места
type PlaceResponse struct {
	Place *domain.Place `json:"place"`
}

// PlaceListResponse - ответ со списком мест
type PlaceListResponse struct {
	Places []*domain.Place `json:"places"`
	Total  int             `json:"total"`
}

// NearestPlacesResponse - ответ на поиск ближайших мест
type NearestPlacesResponse struct {
	Places []domain.PlaceWithDistance `json:"places"`
	Total  int                        `json:"total"`
}
