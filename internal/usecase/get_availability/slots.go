package get_availability

import (
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

// generateSlots генерирует кандидатов времени начала для ресурса на дату
// Слоты идут от открытия с шагом сетки ресурса; последним кандидатом является
// время, в которое еще помещается минимальное бронирование категории до закрытия.
// Для сегодняшней даты слоты раньше now + MinLeadMinutes исключаются:
// они не являются легальной целью нового бронирования
//
// Повторная генерация для той же пары (ресурс, дата) идемпотентна
func generateSlots(resource *domain.Resource, date time.Time, now time.Time) ([]types.TimeString, error) {
	// Прошедшие даты не предлагают слотов
	if isDateInPast(date, now) {
		return []types.TimeString{}, nil
	}

	minDuration := domain.MinBookingMinutes(resource.Category)

	allSlots := make([]types.TimeString, 0)
	currentSlot := resource.OpenTime

	for currentSlot.IsBefore(resource.CloseTime) {
		// Минимальное бронирование должно помещаться до закрытия
		minEnd, err := currentSlot.AddMinutes(minDuration)
		if err != nil {
			break
		}
		if minEnd.IsAfter(resource.CloseTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)

		next, err := currentSlot.AddMinutes(resource.SlotDurationMinutes)
		if err != nil {
			break
		}
		currentSlot = next
	}

	// Для будущих дат возвращаем все слоты
	if !isSameDay(date, now) {
		return allSlots, nil
	}

	// Для сегодняшней даты фильтруем по минимальному упреждению
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(resource.MinLeadMinutes)
	if err != nil {
		// now + упреждение ушло за полночь, сегодня бронировать уже нечего
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// resolveSlots размечает кандидатов занятостью и максимальной длительностью
// Слот занят, если хотя бы одно занимающее интервал бронирование пересекается
// с окном сетки [start, start+шаг); граничащие интервалы пересечением не считаются
func resolveSlots(
	resource *domain.Resource,
	candidates []types.TimeString,
	bookings []*domain.Booking,
) []Slot {
	result := make([]Slot, 0, len(candidates))

	for _, start := range candidates {
		end, err := start.AddMinutes(resource.SlotDurationMinutes)
		if err != nil {
			continue
		}

		available := countOverlappingBookings(start, resource.SlotDurationMinutes, bookings) == 0

		maxDuration := 0
		if available {
			maxDuration = maxDurationFrom(resource, start, bookings)
		}

		result = append(result, Slot{
			StartTime:          start,
			EndTime:            end,
			Available:          available,
			MaxDurationMinutes: maxDuration,
		})
	}

	return result
}

// maxDurationFrom вычисляет максимальную длительность бронирования от start:
// зазор до начала ближайшего занятого интервала, ограниченный временем закрытия
// и максимальной длительностью ресурса
func maxDurationFrom(resource *domain.Resource, start types.TimeString, bookings []*domain.Booking) int {
	limit, err := start.MinutesUntil(resource.CloseTime)
	if err != nil || limit <= 0 {
		return 0
	}

	for _, booking := range bookings {
		if !booking.OccupiesInterval() {
			continue
		}
		if !booking.StartTime.IsAfter(start) {
			// Бронирования, начавшиеся в start или раньше, либо делают слот
			// занятым (и сюда не попадают), либо уже закончились до start
			continue
		}
		gap, err := start.MinutesUntil(booking.StartTime)
		if err != nil {
			continue
		}
		if gap < limit {
			limit = gap
		}
	}

	if limit > resource.MaxBookingMinutes {
		limit = resource.MaxBookingMinutes
	}
	return limit
}

// countOverlappingBookings подсчитывает занимающие интервал бронирования,
// пересекающиеся с указанным окном
// Интервалы [s1,e1) и [s2,e2) пересекаются тогда и только тогда, когда
// s1 < e2 И s2 < e1; граничащие интервалы (e1 == s2) не пересекаются
func countOverlappingBookings(slotStart types.TimeString, slotDuration int, bookings []*domain.Booking) int {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		return 0
	}

	count := 0

	for _, booking := range bookings {
		if !booking.OccupiesInterval() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
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
