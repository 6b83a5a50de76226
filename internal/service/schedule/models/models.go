package models

import (
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	StartHour           *int `json:"startHour,omitempty"`
	EndHour             *int `json:"endHour,omitempty"`
	SlotIntervalMinutes *int `json:"slotIntervalMinutes,omitempty"`
	ClosedWeekday       *int `json:"closedWeekday,omitempty"` // 0 = воскресенье .. 6 = суббота
	ClearClosedWeekday  bool `json:"clearClosedWeekday,omitempty"`
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(cfg *domain.ScheduleConfig) {
	if r.StartHour != nil {
		cfg.StartHour = *r.StartHour
	}
	if r.EndHour != nil {
		cfg.EndHour = *r.EndHour
	}
	if r.SlotIntervalMinutes != nil {
		cfg.SlotIntervalMinutes = *r.SlotIntervalMinutes
	}
	if r.ClosedWeekday != nil {
		cfg.ClosedWeekday = r.ClosedWeekday
	}
	if r.ClearClosedWeekday {
		cfg.ClosedWeekday = nil
	}
}

// UpsertExceptionRequest запрос на создание/обновление исключения на дату
type UpsertExceptionRequest struct {
	Date           time.Time `json:"-"` // из path параметра
	StartHour      *int      `json:"startHour,omitempty"`
	EndHour        *int      `json:"endHour,omitempty"`
	Closed         bool      `json:"closed,omitempty"`
	LunchStartHour *int      `json:"lunchStartHour,omitempty"`
	LunchEndHour   *int      `json:"lunchEndHour,omitempty"`
}

// ToDomainException конвертирует request в domain модель
func (r *UpsertExceptionRequest) ToDomainException() *domain.ScheduleException {
	return &domain.ScheduleException{
		Date:           r.Date,
		StartHour:      r.StartHour,
		EndHour:        r.EndHour,
		Closed:         r.Closed,
		LunchStartHour: r.LunchStartHour,
		LunchEndHour:   r.LunchEndHour,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	StartHour           int                 `json:"startHour"`
	EndHour             int                 `json:"endHour"`
	SlotIntervalMinutes int                 `json:"slotIntervalMinutes"`
	ClosedWeekday       *int                `json:"closedWeekday,omitempty"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	Exceptions          []ExceptionResponse `json:"exceptions"`
}

// ExceptionResponse ответ с исключением на дату
type ExceptionResponse struct {
	Date           string `json:"date"` // "2025-11-12"
	StartHour      *int   `json:"startHour,omitempty"`
	EndHour        *int   `json:"endHour,omitempty"`
	Closed         bool   `json:"closed"`
	LunchStartHour *int   `json:"lunchStartHour,omitempty"`
	LunchEndHour   *int   `json:"lunchEndHour,omitempty"`
}

// ShopStatusResponse ответ со статусом "открыто сейчас"
type ShopStatusResponse struct {
	Open      bool   `json:"open"`
	Date      string `json:"date"`
	StartHour int    `json:"startHour"` // эффективные часы на сегодня
	EndHour   int    `json:"endHour"`
	Closed    bool   `json:"closed"` // день закрыт целиком
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.ScheduleConfig, exceptions []*domain.ScheduleException) *ConfigResponse {
	resp := &ConfigResponse{
		StartHour:           cfg.StartHour,
		EndHour:             cfg.EndHour,
		SlotIntervalMinutes: cfg.SlotIntervalMinutes,
		ClosedWeekday:       cfg.ClosedWeekday,
		UpdatedAt:           cfg.UpdatedAt,
		Exceptions:          make([]ExceptionResponse, 0, len(exceptions)),
	}

	for _, exc := range exceptions {
		resp.Exceptions = append(resp.Exceptions, *FromDomainException(exc))
	}

	return resp
}

// FromDomainException конвертирует domain исключение в DTO
func FromDomainException(exc *domain.ScheduleException) *ExceptionResponse {
	if exc == nil {
		return nil
	}

	return &ExceptionResponse{
		Date:           exc.Date.Format(domain.DateFormat),
		StartHour:      exc.StartHour,
		EndHour:        exc.EndHour,
		Closed:         exc.Closed,
		LunchStartHour: exc.LunchStartHour,
		LunchEndHour:   exc.LunchEndHour,
	}
}
