package get_calendar

import "errors"

var (
	// ErrUnknownCategory возвращается при неизвестной категории ресурсов
	ErrUnknownCategory = errors.New("get_calendar: unknown resource category")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("get_calendar: invalid date range")

	// ErrRangeTooWide возвращается, когда диапазон превышает допустимый размер
	ErrRangeTooWide = errors.New("get_calendar: date range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
