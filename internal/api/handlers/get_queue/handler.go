package get_queue

import (
	"net/http"

	"github.com/m04kA/SBS-SchedulingService/internal/api/handlers"
)

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

// Handle GET /api/v1/queue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	queue, err := h.service.GetQueue(r.Context())
	if err != nil {
		h.logger.Error("GET /queue - Failed to get queue: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /queue - Queue retrieved: %d entries", len(queue.Queue))
	handlers.RespondJSON(w, http.StatusOK, queue)
}
