package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	bookingRepo "github.com/zarechye/booking-service/internal/infra/storage/booking"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
	"github.com/zarechye/booking-service/internal/integrations/notifyservice"
	"github.com/zarechye/booking-service/internal/pricing"
	"github.com/zarechye/booking-service/internal/service/bookings/models"
	"github.com/zarechye/booking-service/pkg/ptr"
)

// Service сервис жизненного цикла бронирования
// Все переходы статусов идут через таблицу допустимых переходов; недопустимый
// переход отклоняется с ErrIllegalTransition до каких-либо записей в хранилище
type Service struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	// pendingHold сколько заявка остается в pending_call до принудительного истечения
	pendingHold time.Duration
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	pendingHold time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		pendingHold:  pendingHold,
	}
}

// GetByID возвращает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID: %v", ErrInternal, err)
	}
	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования для персонала с фильтрацией по ресурсу и периоду
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if !req.Role.IsStaff() {
		return nil, ErrAccessDenied
	}

	filter := domain.ResourceBookingsFilter{
		ResourceID:      req.ResourceID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          req.Status,
		IncludeReleased: req.IncludeReleased,
	}
	if req.Category != "" {
		category := req.Category
		filter.Category = &category
	}

	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetWithFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Accept подтверждает заявку после звонка гостю: pending_call -> confirmed
// Интервал перепроверяется под блокировкой: между созданием заявки и звонком
// персонал мог подтвердить конкурирующее бронирование на тот же интервал
func (s *Service) Accept(ctx context.Context, id int64, req *models.AcceptBookingRequest) (*models.BookingResponse, error) {
	if !req.Role.IsStaff() {
		return nil, ErrAccessDenied
	}

	s.logger.Info("Accept: booking id=%d by user=%d", id, req.ActorID)

	var booking *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, "Accept", id)
		if err != nil {
			return err
		}

		if !domain.CanTransition(booking.Status, domain.StatusConfirmed) {
			s.logger.Warn("Accept: booking id=%d in status %s cannot be confirmed", id, booking.Status)
			return ErrIllegalTransition
		}

		taken, err := s.hasCompetingBooking(txCtx, booking)
		if err != nil {
			s.logger.Error("Accept: overlap check failed for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Accept - overlap check: %v", ErrInternal, err)
		}
		if taken {
			s.logger.Warn("Accept: interval for booking id=%d already taken", id)
			return ErrSlotTaken
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			s.logger.Error("Accept: failed to update status for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Accept - update status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	oldStatus := booking.Status
	booking.Status = domain.StatusConfirmed
	s.notifyChange(ctx, booking, oldStatus)

	s.logger.Info("Accept: booking id=%d confirmed", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование с указанием причины
// Гость может отменить только свою заявку, персонал любую неотмененную
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d by user=%d reason=%q", id, req.ActorID, req.Reason)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !req.Role.IsStaff() && booking.CreatedBy != req.ActorID {
			s.logger.Warn("Cancel: user=%d is not allowed to cancel booking id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d in status %s cannot be cancelled", id, booking.Status)
			return ErrIllegalTransition
		}

		if err := s.bookingRepo.Cancel(txCtx, id, req.Reason); err != nil {
			s.logger.Error("Cancel: failed to cancel booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	oldStatus := booking.Status
	now := s.timeProvider.Now()
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &req.Reason
	booking.CancelledAt = &now
	s.notifyChange(ctx, booking, oldStatus)

	s.logger.Info("Cancel: booking id=%d cancelled, interval released", id)
	return models.FromDomainBooking(booking), nil
}

// ClosePayment фиксирует способ оплаты подтвержденного бронирования
func (s *Service) ClosePayment(ctx context.Context, id int64, req *models.ClosePaymentRequest) (*models.BookingResponse, error) {
	if !req.Role.IsStaff() {
		return nil, ErrAccessDenied
	}

	s.logger.Info("ClosePayment: booking id=%d method=%s by user=%d", id, req.Method, req.ActorID)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, "ClosePayment", id)
		if err != nil {
			return err
		}

		if booking.Status != domain.StatusConfirmed {
			s.logger.Warn("ClosePayment: booking id=%d in status %s", id, booking.Status)
			return ErrPaymentNotAllowed
		}

		if err := s.bookingRepo.SetPaymentMethod(txCtx, id, req.Method); err != nil {
			s.logger.Error("ClosePayment: failed to set payment method for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: ClosePayment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.PaymentMethod = &req.Method
	return models.FromDomainBooking(booking), nil
}

// SetDiscount устанавливает скидку и пересчитывает расценку бронирования
// Скидка вне диапазона 0..100 отклоняется с ошибкой, молчаливого зажатия нет
func (s *Service) SetDiscount(ctx context.Context, id int64, req *models.SetDiscountRequest) (*models.BookingResponse, error) {
	if req.Role != domain.RoleOwner {
		s.logger.Warn("SetDiscount: user=%d role=%s denied for booking id=%d", req.ActorID, req.Role, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("SetDiscount: booking id=%d percent=%d by user=%d", id, req.DiscountPercent, req.ActorID)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, "SetDiscount", id)
		if err != nil {
			return err
		}

		if booking.IsTerminal() {
			s.logger.Warn("SetDiscount: booking id=%d in terminal status %s", id, booking.Status)
			return ErrIllegalTransition
		}

		price, err := pricing.Reprice(booking, req.DiscountPercent)
		if err != nil {
			s.logger.Warn("SetDiscount: reprice failed for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := s.bookingRepo.UpdatePrice(txCtx, id, price); err != nil {
			s.logger.Error("SetDiscount: failed to update price for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: SetDiscount: %v", ErrInternal, err)
		}
		booking.Price = price
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetDiscount: booking id=%d new total=%.2f", id, booking.Price.Total)
	return models.FromDomainBooking(booking), nil
}

// MarkArrived отмечает приезд гостя: confirmed -> completed
// Отметка допускается не раньше начала визита и не позже конца дня визита
func (s *Service) MarkArrived(ctx context.Context, id int64, req *models.AttendanceRequest) (*models.BookingResponse, error) {
	return s.markAttendance(ctx, "MarkArrived", id, req, domain.StatusCompleted)
}

// MarkNoShow отмечает неявку гостя: confirmed -> no_show
// Интервал при этом не освобождается: неявка учитывается в истории гостя
func (s *Service) MarkNoShow(ctx context.Context, id int64, req *models.AttendanceRequest) (*models.BookingResponse, error) {
	return s.markAttendance(ctx, "MarkNoShow", id, req, domain.StatusNoShow)
}

func (s *Service) markAttendance(
	ctx context.Context,
	op string,
	id int64,
	req *models.AttendanceRequest,
	target domain.BookingStatus,
) (*models.BookingResponse, error) {
	if !req.Role.IsStaff() {
		return nil, ErrAccessDenied
	}

	s.logger.Info("%s: booking id=%d by user=%d", op, id, req.ActorID)

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getForUpdate(txCtx, op, id)
		if err != nil {
			return err
		}

		if !domain.CanTransition(booking.Status, target) {
			s.logger.Warn("%s: booking id=%d in status %s", op, id, booking.Status)
			return ErrIllegalTransition
		}

		now := s.timeProvider.Now()
		if now.Before(visitStart(booking)) {
			s.logger.Warn("%s: booking id=%d visit has not started yet", op, id)
			return ErrTooEarly
		}
		if !now.Before(endOfVisitDay(booking)) {
			s.logger.Warn("%s: booking id=%d visit day has already passed", op, id)
			return ErrTooLate
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, target); err != nil {
			s.logger.Error("%s: failed to update status for booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	oldStatus := booking.Status
	booking.Status = target
	if target == domain.StatusNoShow {
		s.notifyChange(ctx, booking, oldStatus)
	}

	s.logger.Info("%s: booking id=%d -> %s", op, id, target)
	return models.FromDomainBooking(booking), nil
}

// ExpireStale переводит заявки, висящие в pending_call дольше окна удержания,
// в expired и освобождает их интервалы. Вызывается внешним планировщиком
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := s.timeProvider.Now().Add(-s.pendingHold)

	expired, err := s.bookingRepo.ExpireStale(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireStale: failed: %v", err)
		return 0, fmt.Errorf("%w: ExpireStale: %v", ErrInternal, err)
	}

	if expired > 0 {
		s.logger.Info("ExpireStale: %d stale bookings expired, created before %s",
			expired, cutoff.Format(time.RFC3339))
	}
	return expired, nil
}

// getForUpdate читает бронирование внутри транзакции (репозиторий добавляет
// FOR UPDATE) и приводит ошибки репозитория к ошибкам сервиса
func (s *Service) getForUpdate(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to get booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// hasCompetingBooking проверяет, занял ли кто-то интервал бронирования,
// пока оно ожидало подтверждения. Пересечение по строгим неравенствам,
// граничащие интервалы не конфликтуют
func (s *Service) hasCompetingBooking(ctx context.Context, booking *domain.Booking) (bool, error) {
	others, err := s.bookingRepo.GetWithFilter(ctx, domain.ResourceBookingsFilter{
		ResourceID: ptr.Ptr(booking.ResourceID),
		StartDate:  ptr.Ptr(booking.BookingDate),
		EndDate:    ptr.Ptr(booking.BookingDate),
	})
	if err != nil {
		return false, err
	}

	end, err := booking.EndTime()
	if err != nil {
		return false, err
	}
	for _, other := range others {
		if other.ID == booking.ID || !other.OccupiesInterval() {
			continue
		}
		otherEnd, err := other.EndTime()
		if err != nil {
			continue
		}
		// Пересечение по строгим неравенствам, граничащие интервалы допустимы
		if other.StartTime.IsBefore(end) && otherEnd.IsAfter(booking.StartTime) {
			return true, nil
		}
	}
	return false, nil
}

// notifyChange отправляет событие смены статуса best-effort: недоставка
// уведомления не откатывает уже выполненный переход
func (s *Service) notifyChange(ctx context.Context, booking *domain.Booking, oldStatus domain.BookingStatus) {
	resource, err := s.resourceRepo.GetByID(ctx, booking.ResourceID)
	if err != nil {
		if !errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("notify: failed to get resource id=%d: %v", booking.ResourceID, err)
		}
		return
	}

	event := notifyservice.StatusEvent{
		BookingID:     booking.ID,
		ResourceCode:  resource.Code,
		CustomerPhone: booking.Customer.Phone,
		OldStatus:     string(oldStatus),
		NewStatus:     string(booking.Status),
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
	}
	if err := s.notifyClient.NotifyStatusChange(ctx, event); err != nil {
		s.logger.Warn("notify: status change event for booking id=%d not delivered: %v", booking.ID, err)
	}
}

// visitStart возвращает момент начала визита в зоне даты бронирования
func visitStart(b *domain.Booking) time.Time {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		minutes/60, minutes%60, 0, 0, b.BookingDate.Location(),
	)
}

// endOfVisitDay возвращает полночь после даты бронирования: отметки явки
// принимаются только в день визита
func endOfVisitDay(b *domain.Booking) time.Time {
	return time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day()+1,
		0, 0, 0, 0, b.BookingDate.Location(),
	)
}
