package notifyservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ChairFreeNotification уведомление "кресло освободилось, ваша очередь"
type ChairFreeNotification struct {
	AppointmentID int64   `json:"appointmentId"`
	ClientID      *int64  `json:"clientId,omitempty"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientName    string  `json:"clientName"`
	StartTime     string  `json:"startTime"`
}

// NoShowReport отчет о неявке клиента
// NotifyService на своей стороне понижает уровень лояльности клиента
type NoShowReport struct {
	AppointmentID int64   `json:"appointmentId"`
	ClientID      *int64  `json:"clientId,omitempty"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	Date          string  `json:"date"`
}
