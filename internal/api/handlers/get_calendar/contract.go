package get_calendar

import (
	"context"

	uc "github.com/zarechye/booking-service/internal/usecase/get_calendar"
)

type CalendarUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*uc.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
