package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга выведена из каталога
	ErrServiceInactive = errors.New("create_appointment: service is not active")

	// ErrShopClosed возвращается, когда на запрошенную дату мастер не работает
	ErrShopClosed = errors.New("create_appointment: shop is closed on requested date")

	// ErrSlotNotAvailable возвращается при конфликте с существующей записью
	// Состояние гонки: клиент может повторить запрос с другим слотом
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	// или выходит за рабочие часы (структурная ошибка, повтор не поможет)
	ErrInvalidTimeSlot = errors.New("create_appointment: time does not match slot grid")

	// ErrSlotInPast возвращается при попытке записи на прошедшее время
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
