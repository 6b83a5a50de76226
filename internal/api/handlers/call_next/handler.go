package call_next

import (
	"errors"
	"net/http"

	"github.com/m04kA/SBS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBS-SchedulingService/internal/service/queue"
)

const (
	msgChairBusy = "предыдущий клиент еще обслуживается"
)

// EmptyQueueResponse ответ при пустой очереди
type EmptyQueueResponse struct {
	Called *struct{} `json:"called"` // null: очередь пуста, состояние не изменилось
}

type Handler struct {
	service QueueService
	logger  Logger
}

func NewHandler(service QueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/call-next
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	next, err := h.service.CallNext(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrChairBusy):
			h.logger.Warn("POST /queue/call-next - Chair is busy")
			handlers.RespondError(w, http.StatusConflict, msgChairBusy)

		default:
			h.logger.Error("POST /queue/call-next - Failed to call next: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Пустая очередь - не ошибка
	if next == nil {
		h.logger.Info("POST /queue/call-next - Queue is empty")
		handlers.RespondJSON(w, http.StatusOK, EmptyQueueResponse{})
		return
	}

	h.logger.Info("POST /queue/call-next - Appointment called: appointment_id=%d", next.ID)
	handlers.RespondJSON(w, http.StatusOK, next)
}
