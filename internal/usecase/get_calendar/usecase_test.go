package get_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeResourceRepo struct {
	resources []*domain.Resource
}

func (f *fakeResourceRepo) ListByCategory(_ context.Context, _ domain.Category) ([]*domain.Resource, error) {
	return f.resources, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func quadResource(id int64, code string) *domain.Resource {
	return &domain.Resource{
		ID:                  id,
		Code:                code,
		Category:            domain.CategoryQuad,
		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("13:00"),
		SlotDurationMinutes: 60,
		MaxBookingMinutes:   180,
		MinLeadMinutes:      0,
		Active:              true,
	}
}

func quadBooking(resourceID int64, date time.Time, start string, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		ResourceID:      resourceID,
		Category:        domain.CategoryQuad,
		BookingDate:     date,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(resources []*domain.Resource, bookings []*domain.Booking) *UseCase {
	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeResourceRepo{resources: resources},
		&fakeTxManager{},
		nopLogger{},
	)
}

func TestExecute_EmptyDay(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase([]*domain.Resource{quadResource(1, "QUAD1")}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryQuad,
		From:     day,
		To:       day,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.False(t, resp.Days[0].HasBookings)
	assert.False(t, resp.Days[0].FullyBooked)
}

func TestExecute_PartiallyBookedDay(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	resources := []*domain.Resource{quadResource(1, "QUAD1")}
	bookings := []*domain.Booking{quadBooking(1, day, "10:00", 60)}

	uc := newTestUseCase(resources, bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryQuad,
		From:     day,
		To:       day,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.True(t, resp.Days[0].HasBookings)
	assert.False(t, resp.Days[0].FullyBooked)
}

func TestExecute_FullyBookedRequiresAllResources(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	// Ресурс с часами 10:00-13:00 и минимальным бронированием квадроциклов
	// в 1 час дает слоты 10:00, 11:00, 12:00
	resources := []*domain.Resource{quadResource(1, "QUAD1"), quadResource(2, "QUAD2")}

	// Первый квадроцикл занят весь день, второй свободен: день не полностью занят
	firstFull := []*domain.Booking{quadBooking(1, day, "10:00", 180)}
	uc := newTestUseCase(resources, firstFull)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryQuad, From: day, To: day,
	})
	require.NoError(t, err)
	assert.True(t, resp.Days[0].HasBookings)
	assert.False(t, resp.Days[0].FullyBooked)

	// Оба заняты: день полностью занят, HasBookings при этом false
	bothFull := []*domain.Booking{
		quadBooking(1, day, "10:00", 180),
		quadBooking(2, day, "10:00", 180),
	}
	uc = newTestUseCase(resources, bothFull)

	resp, err = uc.Execute(context.Background(), &Request{
		Category: domain.CategoryQuad, From: day, To: day,
	})
	require.NoError(t, err)
	assert.False(t, resp.Days[0].HasBookings)
	assert.True(t, resp.Days[0].FullyBooked)
}

func TestExecute_MultiDayRange(t *testing.T) {
	from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	resources := []*domain.Resource{quadResource(1, "QUAD1")}
	bookings := []*domain.Booking{quadBooking(1, from.AddDate(0, 0, 1), "11:00", 60)}

	uc := newTestUseCase(resources, bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryQuad, From: from, To: to,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 3)

	assert.False(t, resp.Days[0].HasBookings)
	assert.True(t, resp.Days[1].HasBookings)
	assert.False(t, resp.Days[2].HasBookings)
}

func TestExecute_TodayKeepsBookingsVisible(t *testing.T) {
	// Обзор не зависит от текущего времени: даже когда часы работы за
	// сегодня уже позади и бронировать поздно, записи дня остаются видимыми
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	resources := []*domain.Resource{quadResource(1, "QUAD1")}
	bookings := []*domain.Booking{quadBooking(1, day, "11:00", 60)}

	uc := newTestUseCase(resources, bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryQuad, From: day, To: day,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	assert.True(t, resp.Days[0].HasBookings)
	assert.False(t, resp.Days[0].FullyBooked)
}

func TestDayGrid(t *testing.T) {
	slots := dayGrid(quadResource(1, "QUAD1"))

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("12:00"), slots[2])
}

func TestValidateRequest(t *testing.T) {
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("unknown category", func(t *testing.T) {
		err := validateRequest(&Request{Category: "zoo", From: day, To: day})
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("inverted range", func(t *testing.T) {
		err := validateRequest(&Request{
			Category: domain.CategoryQuad,
			From:     day,
			To:       day.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("range too wide", func(t *testing.T) {
		err := validateRequest(&Request{
			Category: domain.CategoryQuad,
			From:     day,
			To:       day.AddDate(0, 0, maxRangeDays+1),
		})
		assert.ErrorIs(t, err, ErrRangeTooWide)
	})
}
