package get_calendar

import (
	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

// dayGrid генерирует полную дневную сетку времени начала для ресурса:
// от открытия с шагом ресурса, пока помещается минимальное бронирование
// категории. Упреждение здесь не применяется: обзор показывает занятость
// дня целиком, а не то, что еще можно забронировать
func dayGrid(resource *domain.Resource) []types.TimeString {
	minDuration := domain.MinBookingMinutes(resource.Category)

	slots := make([]types.TimeString, 0)
	currentSlot := resource.OpenTime

	for currentSlot.IsBefore(resource.CloseTime) {
		minEnd, err := currentSlot.AddMinutes(minDuration)
		if err != nil {
			break
		}
		if minEnd.IsAfter(resource.CloseTime) {
			break
		}

		slots = append(slots, currentSlot)

		next, err := currentSlot.AddMinutes(resource.SlotDurationMinutes)
		if err != nil {
			break
		}
		currentSlot = next
	}

	return slots
}

// isSlotTaken возвращает true, если окно сетки пересекается с занимающим
// интервал бронированием; граничащие интервалы пересечением не считаются
func isSlotTaken(slotStart types.TimeString, slotDuration int, bookings []*domain.Booking) bool {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		return false
	}

	for _, booking := range bookings {
		if !booking.OccupiesInterval() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}
