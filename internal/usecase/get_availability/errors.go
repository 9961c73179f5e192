package get_availability

import "errors"

var (
	// ErrUnknownCategory возвращается при неизвестной категории ресурсов
	ErrUnknownCategory = errors.New("get_availability: unknown resource category")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("get_availability: resource not found")

	// ErrCategoryMismatch возвращается, когда ресурс принадлежит другой категории
	ErrCategoryMismatch = errors.New("get_availability: resource belongs to another category")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
