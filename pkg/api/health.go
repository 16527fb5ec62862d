package api

import "time"

// HealthStatus представляет снимок состояния движка синхронизации
type HealthStatus struct {
	LastSuccessfulSync *time.Time `json:"last_successful_sync,omitempty"` // начало последнего чистого цикла
	Message            string     `json:"message"`                        // человекочитаемое описание
	Healthy            bool       `json:"healthy"`
	LocalReachable     bool       `json:"local_reachable"`
	RemoteReachable    bool       `json:"remote_reachable"`
}

// StatusResponse представляет ответ /api/v1/status
type StatusResponse struct {
	LastCycle *CycleResult `json:"last_cycle,omitempty"`
	Version   string       `json:"version,omitempty"`
	Health    HealthStatus `json:"health"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
