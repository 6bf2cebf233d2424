package dto

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// DistanceRequest - запрос на расчёт расстояния между двумя точками
type DistanceRequest struct {
	From Point `json:"from" validate:"required"`
	To   Point `json:"to" validate:"required"`
	// Strict - отклонить запрос, если угловое расстояние превышает порог
	// приближения, вместо тихой деградации точности
	Strict bool `json:"strict,omitempty"`
}

// DistancePair - пара точек в пакетном запросе
type DistancePair struct {
	From Point `json:"from" validate:"required"`
	To   Point `json:"to" validate:"required"`
}

// BatchDistanceRequest - пакетный запрос на расчёт расстояний
type BatchDistanceRequest struct {
	Pairs  []DistancePair `json:"pairs" validate:"required,min=1,max=100,dive"`
	Strict bool           `json:"strict,omitempty"`
}

// CompareRequest - запрос на сравнение приближённой и точной формул
type CompareRequest struct {
	From Point `json:"from" validate:"required"`
	To   Point `json:"to" validate:"required"`
}

// CreatePlaceRequest - запрос на создание места по координатам
type CreatePlaceRequest struct {
	Name string   `json:"name" validate:"required,min=1,max=255"`
	Lat  float64  `json:"lat" validate:"min=-90,max=90"`
	Lon  float64  `json:"lon" validate:"min=-180,max=180"`
	Tags []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=64"`
}

// CreatePlaceByAddressRequest - запрос на создание места по адресу
// (координаты определяются геокодером)
type CreatePlaceByAddressRequest struct {
	Name    string   `json:"name" validate:"required,min=1,max=255"`
	Address string   `json:"address" validate:"required,min=3"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=64"`
}

// NearestPlacesRequest - запрос на поиск ближайших мест
type NearestPlacesRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	RadiusKm float64 `json:"radius_km" validate:"required,min=0.1,max=100"`
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=100"`
}
