package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с publisher-сервисами)
const (
	StreamDistanceCompute = "stream:distance:compute"
	StreamDistanceDone    = "stream:distance:done"
)

// CoordinatePair - пара координат для расчёта расстояния
type CoordinatePair struct {
	FromLat float64 `json:"from_lat"`
	FromLon float64 `json:"from_lon"`
	ToLat   float64 `json:"to_lat"`
	ToLon   float64 `json:"to_lon"`
}

// Valid проверяет, что обе точки пары лежат в географическом диапазоне
func (p CoordinatePair) Valid() bool {
	from := Point{Lat: p.FromLat, Lon: p.FromLon}
	to := Point{Lat: p.ToLat, Lon: p.ToLon}
	return from.Valid() && to.Valid()
}

// DistanceComputeEvent - входящее событие на расчёт расстояний
type DistanceComputeEvent struct {
	JobID  uuid.UUID        `json:"job_id"`
	Pairs  []CoordinatePair `json:"pairs"`
	Strict bool             `json:"strict,omitempty"`
}

// PairResult - результат расчёта для одной пары
type PairResult struct {
	Distance float64 `json:"distance"` // meters
	Error    string  `json:"error,omitempty"`
}

// DistanceDoneEvent - результат расчёта всего задания
type DistanceDoneEvent struct {
	JobID   uuid.UUID    `json:"job_id"`
	Results []PairResult `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
