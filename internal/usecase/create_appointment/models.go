package create_appointment

import (
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	"github.com/m04kA/SBS-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID     *int64           // ID клиента (nil для walk-in без аккаунта)
	ClientName   string           // Имя клиента
	ClientPhone  *string          // Телефон клиента
	ServiceID    int64            // ID услуги
	Date         time.Time        // Дата записи
	StartTime    types.TimeString // Время начала ("10:00")
	Notes        *string          // Комментарий клиента
	StaffBooking bool             // true для записей, созданных персоналом (сразу confirmed)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
