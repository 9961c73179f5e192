package accept_booking

import (
	"context"

	"github.com/zarechye/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	Accept(ctx context.Context, id int64, req *models.AcceptBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
