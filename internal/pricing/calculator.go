package pricing

import (
	"fmt"
	"math"

	"github.com/zarechye/booking-service/internal/domain"
)

// Calculate рассчитывает стоимость бронирования
// Чистая функция: одинаковые входные данные всегда дают одинаковую расценку,
// скрытой зависимости от времени нет
//
// Правила:
//   - базовая цена по тарифу типа услуги; при количестве гостей СТРОГО больше
//     порога применяется повышенная цена (строгое >, не >=)
//   - часы сверх включенной длительности оплачиваются по фиксированной ставке
//   - дополнительные услуги суммируются по прейскуранту, неизвестные ключи
//     игнорируются (прямая совместимость)
//   - скидка считается как процент от суммы до скидки и округляется до рубля
func Calculate(
	subtype domain.Subtype,
	guestCount int,
	durationHours int,
	addOns []domain.AddOn,
	discountPercent int,
) (domain.PriceBreakdown, error) {
	tariff, ok := domain.TariffFor(subtype)
	if !ok {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: %q", ErrUnknownSubtype, subtype)
	}

	if guestCount <= 0 {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: got %d", ErrInvalidGuestCount, guestCount)
	}

	if durationHours < tariff.IncludedHours || durationHours > tariff.MaxHours {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: %d hours, allowed %d..%d",
			ErrInvalidDuration, durationHours, tariff.IncludedHours, tariff.MaxHours)
	}

	if discountPercent < domain.MinDiscountPercent || discountPercent > domain.MaxDiscountPercent {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: got %d", ErrDiscountOutOfRange, discountPercent)
	}

	base := tariff.BasePrice
	if tariff.GuestThreshold > 0 && guestCount > tariff.GuestThreshold {
		base = tariff.ElevatedPrice
	}

	extraHours := durationHours - tariff.IncludedHours
	if extraHours < 0 {
		extraHours = 0
	}
	extraPrice := float64(extraHours) * tariff.ExtraHourPrice

	var addOnsPrice float64
	for _, addOn := range addOns {
		price, known := domain.AddOnPrices[addOn]
		if !known {
			continue
		}
		addOnsPrice += price
	}

	subtotal := base + extraPrice + addOnsPrice
	discountAmount := math.Round(subtotal * float64(discountPercent) / 100)

	return domain.PriceBreakdown{
		BasePrice:       base,
		ExtraHoursPrice: extraPrice,
		AddOnsPrice:     addOnsPrice,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		Total:           subtotal - discountAmount,
	}, nil
}

// Reprice пересчитывает расценку существующего бронирования с новой скидкой
// Используется при редактировании скидки владельцем
func Reprice(b *domain.Booking, discountPercent int) (domain.PriceBreakdown, error) {
	return Calculate(b.Subtype, b.GuestCount, b.DurationMinutes/60, b.AddOns, discountPercent)
}
