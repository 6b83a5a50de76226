package delete_schedule_exception

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	scheduleService "github.com/m04kA/SBS-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "исключение на эту дату не найдено"
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

// Handle DELETE /api/v1/schedule/exceptions/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.ParseInLocation(domain.DateFormat, vars["date"], time.Local)
	if err != nil {
		h.logger.Warn("DELETE /schedule/exceptions/{date} - Invalid date: %q", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteException(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrExceptionNotFound):
			h.logger.Warn("DELETE /schedule/exceptions/{date} - Not found: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /schedule/exceptions/{date} - Failed: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/exceptions/{date} - Exception removed: date=%s", vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
