package geo

import "math"

const (
	// earthRadiusM - экваториальный радиус Земли в метрах (WGS-84)
	earthRadiusM = 6378137.0

	// halfDegToRad - перевод градусов в радианы полуугла за одно умножение:
	// x * π/360 == (x/2) * π/180
	halfDegToRad = math.Pi / 360.0

	// DefaultMaxSeparationDeg - порог углового расстояния (в градусах),
	// до которого приближённая формула держится в пределах ~1% от точного
	// haversine. Подобран эмпирически на региональных дистанциях.
	DefaultMaxSeparationDeg = 5.0
)

// ApproxDistance вычисляет приближённое расстояние между двумя точками
// в метрах по упрощённой haversine-формуле.
//
// Оптимизации относительно точной формулы:
//   - sin(x) ≈ x для полууглов дельт широты и долготы (точки рядом,
//     аргумент близок к нулю);
//   - cos средней широты вместо произведения cos(lat1)*cos(lat2);
//   - возведение в квадрат прямым умножением, без math.Pow.
//
// Формула рассчитана на региональные дистанции (десятки - низкие сотни
// километров). С ростом углового расстояния погрешность растёт; для
// контроля используйте SeparationDegrees и DefaultMaxSeparationDeg.
func ApproxDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * halfDegToRad
	dLon := (lon2 - lon1) * halfDegToRad
	cLat := math.Cos((lat1 + lat2) * halfDegToRad)

	f := dLat*dLat + cLat*cLat*dLon*dLon
	// За пределами малых углов f может выйти из [0,1]
	if f > 1 {
		f = 1
	}

	c := 2 * math.Atan2(math.Sqrt(f), math.Sqrt(1-f))
	return earthRadiusM * c
}

// HaversineDistance вычисляет точное расстояние между двумя точками
// в метрах по полной haversine-формуле. Используется как эталон для
// сравнения с ApproxDistance.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// SeparationDegrees возвращает угловое расстояние между двумя точками
// в градусах (центральный угол сферы)
func SeparationDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineDistance(lat1, lon1, lat2, lon2) / earthRadiusM * 180.0 / math.Pi
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса (0.1 - 100 км)
func ValidateRadius(radiusKm float64) bool {
	return radiusKm >= 0.1 && radiusKm <= 100
}

// BoundingBoxAround возвращает границы прямоугольника вокруг точки с
// заданным радиусом в метрах. Используется как префильтр перед точным
// расчётом расстояний (поиск ближайших мест).
func BoundingBoxAround(lat, lon, radiusM float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusM / earthRadiusM * 180.0 / math.Pi

	lonDelta := latDelta
	if cLat := math.Cos(lat * math.Pi / 180.0); cLat > 1e-9 {
		lonDelta = latDelta / cLat
	}

	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta
}
