package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/possync/pkg/api"
)

// StatusSource отдает текущий снимок здоровья и итог последнего цикла
type StatusSource interface {
	Status() api.HealthStatus
	LastCycle() *api.CycleResult
}

// HealthHandler обрабатывает health check и status запросы
type HealthHandler struct {
	logger  *slog.Logger
	source  StatusSource
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, source StatusSource, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		source:  source,
		version: version,
	}
}

// Health обрабатывает GET /health.
// 200 когда последний цикл прошел чисто, иначе 503 с тем же телом.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	status := h.source.Status()

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	sendJSON(h.logger, w, status, code)
}

// Live обрабатывает GET /live: процесс жив, состояние синхронизации не важно
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	sendJSON(h.logger, w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Status обрабатывает GET /api/v1/status
func (h *HealthHandler) Status(w http.ResponseWriter, _ *http.Request) {
	resp := api.StatusResponse{
		Health:    h.source.Status(),
		LastCycle: h.source.LastCycle(),
		Version:   h.version,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}
