package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/zarechye/booking-service/internal/domain"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
	guestClient "github.com/zarechye/booking-service/internal/integrations/guestservice"
	"github.com/zarechye/booking-service/internal/pricing"
	"github.com/zarechye/booking-service/pkg/ptr"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	guestClient  GuestServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	guestClient GuestServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		guestClient:  guestClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости интервала и вставка идут в одной сериализуемой транзакции
// с блокировкой соперничающих строк: два конкурирующих запроса на один интервал
// не могут пройти оба (Conflict Guard)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: resource=%d, subtype=%s, date=%s, time=%s, guests=%d",
		req.ResourceID, req.Subtype, req.Date.Format(domain.DateFormat), req.StartTime, req.GuestCount)

	// 1. Валидация входных данных до любого обращения к хранилищу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	// 3. Проверка черного списка через сервис профилей
	// Недоступность сервиса не блокирует продажи (graceful degradation)
	profile, err := uc.guestClient.GetProfileWithGracefulDegradation(ctx, req.CustomerPhone)
	switch {
	case err == nil:
		if profile.Blacklisted {
			uc.logger.Warn("CreateBooking: guest phone=%s is blacklisted", req.CustomerPhone)
			return nil, ErrGuestBlacklisted
		}
	case errors.Is(err, guestClient.ErrGuestNotFound):
		// Новый гость, профиля еще нет
	case errors.Is(err, guestClient.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: guest profile check skipped, service degraded")
	default:
		uc.logger.Error("CreateBooking: guest profile check failed: %v", err)
		return nil, fmt.Errorf("%w: guest profile check failed: %v", ErrInternal, err)
	}

	// 4. Расценка считается до транзакции: чистая функция, зависит только от запроса
	price, err := pricing.Calculate(req.Subtype, req.GuestCount, req.DurationMinutes/60, req.AddOns, 0)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tariff, _ := domain.TariffFor(req.Subtype)

	var result *domain.Booking
	var resCode string

	// 5. Атомарная проверка и вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Ресурс: существует, активен, категория соответствует типу услуги
		resource, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get resource id=%d: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}
		if !resource.Active {
			uc.logger.Warn("CreateBooking: resource id=%d is inactive", req.ResourceID)
			return ErrResourceInactive
		}
		if resource.Category != tariff.Category {
			uc.logger.Warn("CreateBooking: subtype %s is %s, resource id=%d is %s",
				req.Subtype, tariff.Category, resource.ID, resource.Category)
			return ErrCategoryMismatch
		}
		resCode = resource.Code

		// 5.2. Дата, упреждение и интервал
		if err := validateDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}
		if err := validateLeadTime(req.Date, req.StartTime, now, resource.MinLeadMinutes); err != nil {
			uc.logger.Warn("CreateBooking: lead time validation failed: %v", err)
			return err
		}
		if err := validateInterval(resource, req.StartTime, req.DurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: interval validation failed: %v", err)
			return err
		}

		// 5.3. Занимающие интервал бронирования ресурса на дату, с блокировкой (FOR UPDATE)
		filter := domain.ResourceBookingsFilter{
			ResourceID: ptr.Ptr(req.ResourceID),
			StartDate:  ptr.Ptr(req.Date),
			EndDate:    ptr.Ptr(req.Date),
		}
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.4. Пересечение интервалов: строгие неравенства, граничащие допустимы
		taken, err := hasOverlappingBooking(req.StartTime, req.DurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: slot %s+%dmin on resource id=%d already taken",
				req.StartTime, req.DurationMinutes, req.ResourceID)
			return ErrSlotTaken
		}

		// 5.5. Начальный статус: заявка персонала подтверждена сразу
		status := domain.StatusPendingCall
		if req.Role.IsStaff() {
			status = domain.StatusConfirmed
		}

		booking := &domain.Booking{
			ResourceID:      resource.ID,
			Category:        resource.Category,
			Subtype:         req.Subtype,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: req.DurationMinutes,
			GuestCount:      req.GuestCount,
			AddOns:          req.AddOns,
			Price:           price,
			Customer: domain.Customer{
				Name:  req.CustomerName,
				Phone: req.CustomerPhone,
			},
			Status:    status,
			CreatedBy: req.CreatedBy,
		}
		if profile != nil {
			booking.Customer.ExternalID = &profile.ExternalID
		}

		// 5.6. Вставка: бронирование и расценка сохраняются вместе или никак
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		ResourceID:      result.ResourceID,
		ResourceCode:    resCode,
		Category:        result.Category,
		Subtype:         result.Subtype,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		GuestCount:      result.GuestCount,
		AddOns:          result.AddOns,
		Price:           result.Price,
		CustomerName:    result.Customer.Name,
		CustomerPhone:   result.Customer.Phone,
		Status:          result.Status,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
