package notifyservice

import "errors"

var (
	// ErrInternal возвращается при ошибках построения или выполнения запроса
	ErrInternal = errors.New("notifyservice: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе NotifyService
	ErrInvalidResponse = errors.New("notifyservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности NotifyService
	// Уведомления не критичны для планирования, вызывающий код логирует и продолжает
	ErrServiceDegraded = errors.New("notifyservice: service degraded")
)
