package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
)

// UseCase use case календарного обзора занятости категории
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case календарного обзора
// День категории считается полностью занятым, когда во ВСЕХ ресурсах категории
// не осталось ни одного свободного слота (например, заняты оба SPA-комплекса)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: category=%s, from=%s, to=%s",
		req.Category, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	var resources []*domain.Resource
	var bookings []*domain.Booking

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		resources, err = uc.resourceRepo.ListByCategory(txCtx, req.Category)
		if err != nil {
			uc.logger.Error("GetCalendar: failed to list resources for category=%s: %v", req.Category, err)
			return fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
		}

		filter := domain.ResourceBookingsFilter{
			Category:  &req.Category,
			StartDate: &req.From,
			EndDate:   &req.To,
		}
		bookings, err = uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("GetCalendar: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	byDate := groupByDate(bookings)

	days := make([]DayOverview, 0)
	for date := truncateToDay(req.From); !date.After(req.To); date = date.AddDate(0, 0, 1) {
		days = append(days, uc.resolveDay(resources, byDate[date.Format(domain.DateFormat)], date))
	}

	uc.logger.Info("GetCalendar: resolved %d days for category=%s", len(days), req.Category)

	return &Response{
		Category: req.Category,
		Days:     days,
	}, nil
}

// resolveDay агрегирует занятость всех ресурсов категории за один день
// Сетка берется за день целиком: даже когда сегодня бронировать уже поздно,
// существующие бронирования должны быть видны в обзоре
func (uc *UseCase) resolveDay(
	resources []*domain.Resource,
	dayBookings []*domain.Booking,
	date time.Time,
) DayOverview {
	totalSlots := 0
	takenSlots := 0

	for _, resource := range resources {
		resourceBookings := make([]*domain.Booking, 0)
		for _, b := range dayBookings {
			if b.ResourceID == resource.ID {
				resourceBookings = append(resourceBookings, b)
			}
		}

		for _, slot := range dayGrid(resource) {
			totalSlots++
			if isSlotTaken(slot, resource.SlotDurationMinutes, resourceBookings) {
				takenSlots++
			}
		}
	}

	fullyBooked := totalSlots > 0 && takenSlots == totalSlots

	return DayOverview{
		Date:        date,
		HasBookings: takenSlots > 0 && !fullyBooked,
		FullyBooked: fullyBooked,
	}
}

func validateRequest(req *Request) error {
	if _, ok := domain.ParseCategory(string(req.Category)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, req.Category)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidRange)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidRange)
	}

	if req.To.Sub(req.From) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: at most %d days", ErrRangeTooWide, maxRangeDays)
	}

	return nil
}

func groupByDate(bookings []*domain.Booking) map[string][]*domain.Booking {
	byDate := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], b)
	}
	return byDate
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
