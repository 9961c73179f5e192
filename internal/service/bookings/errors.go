package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrIllegalTransition возвращается при переходе, запрещенном таблицей статусов
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrSlotTaken возвращается, когда при подтверждении интервал уже занят
	// другим бронированием: гонка между показом доступности и подтверждением
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrPaymentNotAllowed возвращается при попытке закрыть оплату вне статуса confirmed
	ErrPaymentNotAllowed = errors.New("payment can only be closed for confirmed bookings")

	// ErrTooEarly возвращается для arrive/no-show раньше даты и времени начала визита
	ErrTooEarly = errors.New("visit has not started yet")

	// ErrTooLate возвращается для arrive/no-show после окончания дня визита:
	// явка отмечается в день бронирования, задним числом статус не меняется
	ErrTooLate = errors.New("attendance window has closed")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
