package queue

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("queue: appointment not found")

	// ErrChairBusy возвращается при вызове следующего клиента,
	// пока предыдущий еще обслуживается
	ErrChairBusy = errors.New("queue: another appointment is in progress")

	// ErrNotInQueue возвращается, когда операция применима только
	// к записям в живой очереди (pending/confirmed)
	ErrNotInQueue = errors.New("queue: appointment is not in the queue")

	// ErrInvalidStatus возвращается при недопустимом переходе статуса
	ErrInvalidStatus = errors.New("queue: invalid status transition")

	// ErrCannotCancel возвращается, когда запись нельзя отменить
	ErrCannotCancel = errors.New("queue: appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("queue: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("queue: internal error")
)
