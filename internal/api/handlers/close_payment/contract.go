package close_payment

import (
	"context"

	"github.com/zarechye/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	ClosePayment(ctx context.Context, id int64, req *models.ClosePaymentRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
