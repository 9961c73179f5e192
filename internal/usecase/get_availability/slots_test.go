package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

func testResource() *domain.Resource {
	return &domain.Resource{
		ID:                  1,
		Code:                "BATH1",
		Category:            domain.CategoryBath,
		Name:                "Баня на дровах",
		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("23:00"),
		SlotDurationMinutes: 60,
		MaxBookingMinutes:   300,
		MinLeadMinutes:      180,
		Active:              true,
	}
}

func testBooking(start string, durationMinutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              int64(len(start)) + int64(durationMinutes),
		ResourceID:      1,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestGenerateSlots_FutureDate(t *testing.T) {
	resource := testResource()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(resource, date, now)
	require.NoError(t, err)

	// Работа с 10:00 до 23:00, минимальное бронирование категории 3 часа:
	// последний кандидат 20:00 (20:00 + 3ч = 23:00 помещается ровно)
	require.Len(t, slots, 11)
	assert.Equal(t, "10:00", slots[0].String())
	assert.Equal(t, "20:00", slots[len(slots)-1].String())
}

func TestGenerateSlots_TodayLeadTime(t *testing.T) {
	resource := testResource()
	// Сейчас 19:30, упреждение 3 часа: доступны только слоты с 22:30,
	// но последний кандидат 20:00, значит на сегодня все уже ушло
	now := time.Date(2026, 6, 1, 19, 30, 0, 0, time.UTC)
	date := now

	slots, err := generateSlots(resource, date, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_TodayPartialDay(t *testing.T) {
	resource := testResource()
	// Сейчас 10:30, упреждение 3 часа: первый доступный слот 14:00
	now := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)

	slots, err := generateSlots(resource, now, now)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "14:00", slots[0].String())
	assert.Equal(t, "20:00", slots[len(slots)-1].String())
}

func TestGenerateSlots_PastDate(t *testing.T) {
	resource := testResource()
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	slots, err := generateSlots(resource, date, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	resource := testResource()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	first, err := generateSlots(resource, date, now)
	require.NoError(t, err)
	second, err := generateSlots(resource, date, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveSlots_OverlapMarking(t *testing.T) {
	resource := testResource()
	candidates := []types.TimeString{"10:00", "11:00", "12:00", "13:00", "14:00"}

	// Бронирование 11:00-14:00: слоты 11:00, 12:00 и 13:00 заняты,
	// граничащие 10:00 и 14:00 свободны
	bookings := []*domain.Booking{testBooking("11:00", 180, domain.StatusConfirmed)}

	slots := resolveSlots(resource, candidates, bookings)
	require.Len(t, slots, 5)

	assert.True(t, slots[0].Available, "10:00")
	assert.False(t, slots[1].Available, "11:00")
	assert.False(t, slots[2].Available, "12:00")
	assert.False(t, slots[3].Available, "13:00")
	assert.True(t, slots[4].Available, "14:00")
}

func TestResolveSlots_ReleasedBookingsFreeSlots(t *testing.T) {
	resource := testResource()
	candidates := []types.TimeString{"11:00", "12:00"}

	bookings := []*domain.Booking{
		testBooking("11:00", 120, domain.StatusCancelled),
		testBooking("11:00", 120, domain.StatusExpired),
	}

	slots := resolveSlots(resource, candidates, bookings)
	for _, slot := range slots {
		assert.True(t, slot.Available, slot.StartTime.String())
	}
}

func TestResolveSlots_NoShowStillOccupies(t *testing.T) {
	resource := testResource()
	candidates := []types.TimeString{"11:00"}

	bookings := []*domain.Booking{testBooking("11:00", 60, domain.StatusNoShow)}

	slots := resolveSlots(resource, candidates, bookings)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].Available)
}

func TestMaxDurationFrom(t *testing.T) {
	resource := testResource()

	t.Run("free day is capped by resource maximum", func(t *testing.T) {
		got := maxDurationFrom(resource, types.TimeString("10:00"), nil)
		// До закрытия 13 часов, но максимум ресурса 300 минут
		assert.Equal(t, 300, got)
	})

	t.Run("gap to the next booking wins", func(t *testing.T) {
		bookings := []*domain.Booking{testBooking("14:00", 120, domain.StatusConfirmed)}
		got := maxDurationFrom(resource, types.TimeString("12:00"), bookings)
		assert.Equal(t, 120, got)
	})

	t.Run("closing time wins near the end of day", func(t *testing.T) {
		got := maxDurationFrom(resource, types.TimeString("21:00"), nil)
		assert.Equal(t, 120, got)
	})

	t.Run("cancelled bookings do not limit", func(t *testing.T) {
		bookings := []*domain.Booking{testBooking("14:00", 120, domain.StatusCancelled)}
		got := maxDurationFrom(resource, types.TimeString("12:00"), bookings)
		assert.Equal(t, 300, got)
	})
}

func TestCountOverlappingBookings_AdjacentDoNotCount(t *testing.T) {
	// Бронирование 13:00-16:00: окно 12:00-13:00 граничит и не пересекается,
	// окно 15:00-16:00 пересекается
	bookings := []*domain.Booking{testBooking("13:00", 180, domain.StatusPendingCall)}

	assert.Equal(t, 0, countOverlappingBookings(types.TimeString("12:00"), 60, bookings))
	assert.Equal(t, 1, countOverlappingBookings(types.TimeString("13:00"), 60, bookings))
	assert.Equal(t, 1, countOverlappingBookings(types.TimeString("15:00"), 60, bookings))
	assert.Equal(t, 0, countOverlappingBookings(types.TimeString("16:00"), 60, bookings))
}
