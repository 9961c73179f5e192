package guestservice

import "errors"

var (
	// ErrGuestNotFound возвращается, когда профиль гостя не найден
	ErrGuestNotFound = errors.New("guestservice client: guest not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("guestservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("guestservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис профилей недоступен и бронирование принимается
	// без проверки черного списка
	ErrServiceDegraded = errors.New("guestservice unavailable: graceful degradation applied")
)
