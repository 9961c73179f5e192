package pricing

import "errors"

var (
	// ErrUnknownSubtype возвращается для типа услуги, отсутствующего в тарифной сетке
	ErrUnknownSubtype = errors.New("pricing: unknown subtype")

	// ErrInvalidGuestCount возвращается при неположительном количестве гостей
	ErrInvalidGuestCount = errors.New("pricing: guest count must be positive")

	// ErrInvalidDuration возвращается при длительности вне допустимого диапазона тарифа
	ErrInvalidDuration = errors.New("pricing: duration out of tariff range")

	// ErrDiscountOutOfRange возвращается при скидке вне диапазона [0,100]
	// Никогда не зажимается молча, владелец должен увидеть ошибку
	ErrDiscountOutOfRange = errors.New("pricing: discount percent out of range")
)
