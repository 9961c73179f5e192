package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	tariff, ok := domain.TariffFor(req.Subtype)
	if !ok {
		return fmt.Errorf("%w: unknown subtype %q", ErrInvalidInput, req.Subtype)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes%60 != 0 {
		return fmt.Errorf("%w: duration must be a positive number of whole hours", ErrInvalidInterval)
	}
	hours := req.DurationMinutes / 60
	if hours < tariff.IncludedHours || hours > tariff.MaxHours {
		return fmt.Errorf("%w: duration %d hours, allowed %d..%d",
			ErrInvalidInterval, hours, tariff.IncludedHours, tariff.MaxHours)
	}

	if req.GuestCount < tariff.MinGuests || req.GuestCount > tariff.MaxGuests {
		return fmt.Errorf("%w: guest count %d, allowed %d..%d",
			ErrInvalidInput, req.GuestCount, tariff.MinGuests, tariff.MaxGuests)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if len(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customer phone is too long", ErrInvalidInput)
	}

	return nil
}

// validateInterval проверяет интервал против рабочих часов и сетки ресурса
// Нарушения не retryable: повторный запрос с теми же данными упадет так же
func validateInterval(resource *domain.Resource, start types.TimeString, durationMinutes int) error {
	if start.IsBefore(resource.OpenTime) {
		return fmt.Errorf("%w: starts before opening at %s", ErrInvalidInterval, resource.OpenTime)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if end.IsAfter(resource.CloseTime) {
		return fmt.Errorf("%w: ends after closing at %s", ErrInvalidInterval, resource.CloseTime)
	}

	if durationMinutes > resource.MaxBookingMinutes {
		return fmt.Errorf("%w: duration exceeds resource maximum of %d minutes",
			ErrInvalidInterval, resource.MaxBookingMinutes)
	}

	// Время начала должно лежать на сетке слотов ресурса
	offset, err := resource.OpenTime.MinutesUntil(start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	if resource.SlotDurationMinutes > 0 && offset%resource.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: start time is off the %d-minute slot grid",
			ErrInvalidInterval, resource.SlotDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateLeadTime проверяет минимальное упреждение для бронирований на сегодня
func validateLeadTime(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minLeadMinutes int,
) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minLeadMinutes)
	if err != nil {
		// now + упреждение за полночь: сегодня бронировать уже поздно
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minLeadMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minLeadMinutes)
	}

	return nil
}

// hasOverlappingBooking проверяет пересечение запрошенного интервала с занимающими
// интервал бронированиями
// Интервалы [s1,e1) и [s2,e2) пересекаются тогда и только тогда, когда
// s1 < e2 И s2 < e1; граничащие интервалы (e1 == s2) не пересекаются:
// бронирование вплотную за существующим допустимо
func hasOverlappingBooking(
	startTime types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
) (bool, error) {
	requestEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, booking := range bookings {
		if !booking.OccupiesInterval() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(requestEnd) && bookingEnd.IsAfter(startTime) {
			return true, nil
		}
	}

	return false, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
