package models

import (
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// CompleteAppointmentRequest запрос на завершение обслуживания
// FinalPrice опциональна: по умолчанию берется цена услуги на момент записи
type CompleteAppointmentRequest struct {
	FinalPrice *float64 `json:"finalPrice,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        *int64 `json:"clientId,omitempty"`
	ClientName      string `json:"clientName"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ServiceID       int64  `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"` // "2025-11-12"
	StartTime       string `json:"startTime"`       // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	QueueSequence   int    `json:"queueSequence"`

	// Денормализованные данные
	ServiceName  string   `json:"serviceName"`
	ServicePrice float64  `json:"servicePrice"`
	FinalPrice   *float64 `json:"finalPrice,omitempty"`
	Notes        *string  `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QueueEntry позиция в живой очереди на день
type QueueEntry struct {
	Position      int    `json:"position"` // 1..N в порядке вызова
	AppointmentID int64  `json:"appointmentId"`
	ClientName    string `json:"clientName"`
	ServiceName   string `json:"serviceName"`
	StartTime     string `json:"startTime"` // плановое время, не меняется при skip
	Status        string `json:"status"`
}

// QueueResponse ответ с живой очередью на день
type QueueResponse struct {
	Date             string               `json:"date"`
	CurrentlyServing *AppointmentResponse `json:"currentlyServing,omitempty"`
	Queue            []QueueEntry         `json:"queue"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		QueueSequence:   a.QueueSequence,
		ServiceName:     a.ServiceName,
		ServicePrice:    a.ServicePrice,
		FinalPrice:      a.FinalPrice,
		Notes:           a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ToQueueEntries конвертирует записи живой очереди в позиции 1..N
// Записи должны быть уже отсортированы (queue_sequence, start_time)
func ToQueueEntries(appointments []*domain.Appointment) []QueueEntry {
	entries := make([]QueueEntry, 0, len(appointments))
	for _, a := range appointments {
		entries = append(entries, QueueEntry{
			Position:      len(entries) + 1,
			AppointmentID: a.ID,
			ClientName:    a.ClientName,
			ServiceName:   a.ServiceName,
			StartTime:     a.StartTime.String(),
			Status:        string(a.Status),
		})
	}
	return entries
}
