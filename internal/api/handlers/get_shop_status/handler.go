package get_shop_status

import (
	"net/http"

	"github.com/m04kA/SBS-SchedulingService/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.GetShopStatus(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/status - Failed to get status: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/status - Status resolved: open=%v", status.Open)
	handlers.RespondJSON(w, http.StatusOK, status)
}
