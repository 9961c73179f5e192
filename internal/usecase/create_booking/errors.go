package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceInactive возвращается при попытке бронирования выведенного из работы ресурса
	ErrResourceInactive = errors.New("create_booking: resource is not active")

	// ErrCategoryMismatch возвращается, когда тип услуги не относится к категории ресурса
	ErrCategoryMismatch = errors.New("create_booking: subtype does not belong to resource category")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается, когда бронирование нарушает минимальное упреждение
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInterval возвращается при некорректном интервале: вне рабочих часов,
	// мимо сетки слотов или с недопустимой длительностью. Не retryable, ошибка клиента
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrSlotTaken возвращается, когда интервал уже занят другим бронированием
	// Retryable: клиенту следует перечитать доступность и выбрать другой слот
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrGuestBlacklisted возвращается для гостей из черного списка
	ErrGuestBlacklisted = errors.New("create_booking: guest is blacklisted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
