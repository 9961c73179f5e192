package create_booking

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
		OpenTime:            types.TimeString("10:00"),
		CloseTime:           types.TimeString("23:00"),
		SlotDurationMinutes: 60,
		MaxBookingMinutes:   300,
		MinLeadMinutes:      180,
		Active:              true,
	}
}

func validRequest() *Request {
	return &Request{
		ResourceID:      1,
		Subtype:         domain.SubtypeTubOnly,
		Date:            time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 180,
		GuestCount:      4,
		CustomerName:    "Иван Петров",
		CustomerPhone:   "+375291234567",
		CreatedBy:       7,
		Role:            domain.RoleGuest,
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validateRequest(validRequest()))
	})

	t.Run("unknown subtype", func(t *testing.T) {
		req := validRequest()
		req.Subtype = domain.Subtype("igloo")
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("duration must be whole hours", func(t *testing.T) {
		req := validRequest()
		req.DurationMinutes = 150
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInterval)
	})

	t.Run("duration below tariff minimum", func(t *testing.T) {
		req := validRequest()
		req.DurationMinutes = 120
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInterval)
	})

	t.Run("duration above tariff maximum", func(t *testing.T) {
		req := validRequest()
		req.DurationMinutes = 360
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInterval)
	})

	t.Run("guest count outside tariff bounds", func(t *testing.T) {
		req := validRequest()
		req.GuestCount = 7
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("blank customer name", func(t *testing.T) {
		req := validRequest()
		req.CustomerName = "   "
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("blank customer phone", func(t *testing.T) {
		req := validRequest()
		req.CustomerPhone = ""
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})
}

func TestValidateInterval(t *testing.T) {
	resource := testResource()

	t.Run("within working hours on the grid", func(t *testing.T) {
		assert.NoError(t, validateInterval(resource, types.TimeString("14:00"), 180))
	})

	t.Run("ends exactly at closing", func(t *testing.T) {
		assert.NoError(t, validateInterval(resource, types.TimeString("20:00"), 180))
	})

	t.Run("before opening", func(t *testing.T) {
		err := validateInterval(resource, types.TimeString("09:00"), 180)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("ends after closing", func(t *testing.T) {
		err := validateInterval(resource, types.TimeString("21:00"), 180)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("off the slot grid", func(t *testing.T) {
		err := validateInterval(resource, types.TimeString("14:30"), 180)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("exceeds resource maximum", func(t *testing.T) {
		err := validateInterval(resource, types.TimeString("10:00"), 360)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestValidateLeadTime(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)

	t.Run("future date is not constrained", func(t *testing.T) {
		future := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
		assert.NoError(t, validateLeadTime(future, types.TimeString("11:00"), now, 180))
	})

	t.Run("today before the lead window is rejected", func(t *testing.T) {
		err := validateLeadTime(now, types.TimeString("12:00"), now, 180)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("today at the lead boundary is allowed", func(t *testing.T) {
		assert.NoError(t, validateLeadTime(now, types.TimeString("13:30"), now, 180))
	})

	t.Run("lead window past midnight rejects", func(t *testing.T) {
		lateNow := time.Date(2026, 6, 1, 23, 0, 0, 0, time.UTC)
		err := validateLeadTime(lateNow, types.TimeString("23:30"), lateNow, 180)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, validateDate(now, now))
	assert.NoError(t, validateDate(now.AddDate(0, 0, 1), now))
	assert.ErrorIs(t, validateDate(now.AddDate(0, 0, -1), now), ErrInvalidDate)
}

func TestHasOverlappingBooking(t *testing.T) {
	occupying := &domain.Booking{
		StartTime:       types.TimeString("13:00"),
		DurationMinutes: 180,
		Status:          domain.StatusConfirmed,
	}

	t.Run("overlap detected", func(t *testing.T) {
		taken, err := hasOverlappingBooking(types.TimeString("14:00"), 180, []*domain.Booking{occupying})
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("adjacent interval after is allowed", func(t *testing.T) {
		taken, err := hasOverlappingBooking(types.TimeString("16:00"), 180, []*domain.Booking{occupying})
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("adjacent interval before is allowed", func(t *testing.T) {
		taken, err := hasOverlappingBooking(types.TimeString("10:00"), 180, []*domain.Booking{occupying})
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("cancelled booking releases the interval", func(t *testing.T) {
		cancelled := &domain.Booking{
			StartTime:       types.TimeString("13:00"),
			DurationMinutes: 180,
			Status:          domain.StatusCancelled,
		}
		taken, err := hasOverlappingBooking(types.TimeString("14:00"), 180, []*domain.Booking{cancelled})
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("no show still occupies", func(t *testing.T) {
		noShow := &domain.Booking{
			StartTime:       types.TimeString("13:00"),
			DurationMinutes: 180,
			Status:          domain.StatusNoShow,
		}
		taken, err := hasOverlappingBooking(types.TimeString("14:00"), 180, []*domain.Booking{noShow})
		require.NoError(t, err)
		assert.True(t, taken)
	})
}
