package get_schedule_config

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

// Handle GET /api/v1/schedule/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/config - Config retrieved: hours=[%d,%d)", cfg.StartHour, cfg.EndHour)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
