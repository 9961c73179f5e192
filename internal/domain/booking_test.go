package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarechye/booking-service/pkg/types"
)

func TestBooking_OccupiesInterval(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPendingCall, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusNoShow, true},
		{StatusCancelled, false},
		{StatusExpired, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.OccupiesInterval())
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPendingCall}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())

	for _, status := range TerminalStatuses {
		assert.False(t, (&Booking{Status: status}).CanBeCancelled(), "status=%s", status)
	}
}

func TestBooking_EndTime(t *testing.T) {
	start, err := types.NewTimeStringFromString("14:00")
	require.NoError(t, err)

	b := &Booking{StartTime: start, DurationMinutes: 180}
	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "17:00", end.String())
}
