package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allStatuses := []BookingStatus{
		StatusPendingCall, StatusConfirmed, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusExpired,
	}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusPendingCall: {StatusConfirmed: true, StatusCancelled: true, StatusExpired: true},
		StatusConfirmed:   {StatusCompleted: true, StatusCancelled: true, StatusNoShow: true},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[from][to]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatusesHaveNoExits(t *testing.T) {
	targets := []BookingStatus{
		StatusPendingCall, StatusConfirmed, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusExpired,
	}

	for _, terminal := range TerminalStatuses {
		for _, to := range targets {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}
