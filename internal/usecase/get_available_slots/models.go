package get_available_slots

import (
	"time"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	"github.com/m04kA/SBS-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64                 // ID запрашиваемой услуги (определяет длительность)
	Date      time.Time             // Дата для получения слотов (без времени)
	Viewer    domain.ViewerIdentity // Идентичность смотрящего для пометки "ваша запись"
}

// Response модель ответа со списком предлагаемых слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	ServiceID int64     // ID услуги
	Open      bool      // false, если день закрыт (слоты пустые)
	Slots     []Slot    // Упорядоченный список предлагаемых слотов
}

// Slot модель временного слота
// past и lunch слоты в ответ не попадают; occupied/own показываются
// недоступными для выбора
type Slot struct {
	StartTime       types.TimeString  // Время начала слота (например, "10:00")
	DurationMinutes int               // Длительность запрошенной услуги
	Status          domain.SlotStatus // available | occupied | own
}
