package upsert_schedule_exception

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	scheduleService "github.com/m04kA/SBS-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SBS-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/schedule/exceptions/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.ParseInLocation(domain.DateFormat, vars["date"], time.Local)
	if err != nil {
		h.logger.Warn("PUT /schedule/exceptions/{date} - Invalid date: %q", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req models.UpsertExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/exceptions/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Date = date

	exc, err := h.service.UpsertException(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/exceptions/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /schedule/exceptions/{date} - Failed: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/exceptions/{date} - Exception saved: date=%s, closed=%v", exc.Date, exc.Closed)
	handlers.RespondJSON(w, http.StatusOK, exc)
}
