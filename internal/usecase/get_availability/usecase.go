package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/zarechye/booking-service/internal/domain"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
)

// UseCase use case получения доступности слотов по ресурсам категории
type UseCase struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
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
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
// Только чтение: состояние бронирований не меняется, выборка идет в read-only
// транзакции и отражает консистентный снимок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: category=%s, date=%s", req.Category, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var resources []*domain.Resource
	var bookings []*domain.Booking

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		resources, err = uc.loadResources(txCtx, req)
		if err != nil {
			return err
		}

		filter := domain.ResourceBookingsFilter{
			Category:  &req.Category,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		if req.ResourceID != nil {
			filter.ResourceID = req.ResourceID
		}

		bookings, err = uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:      req.Date,
		Category:  req.Category,
		Resources: make([]ResourceAvailability, 0, len(resources)),
	}

	for _, resource := range resources {
		candidates, err := generateSlots(resource, req.Date, now)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to generate slots for resource id=%d: %v", resource.ID, err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		resourceBookings := bookingsForResource(bookings, resource.ID)

		response.Resources = append(response.Resources, ResourceAvailability{
			ResourceID: resource.ID,
			Code:       resource.Code,
			Name:       resource.Name,
			Slots:      resolveSlots(resource, candidates, resourceBookings),
		})
	}

	uc.logger.Info("GetAvailability: resolved %d resources for category=%s, date=%s",
		len(response.Resources), req.Category, req.Date.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) loadResources(ctx context.Context, req *Request) ([]*domain.Resource, error) {
	if req.ResourceID != nil {
		resource, err := uc.resourceRepo.GetByID(ctx, *req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("GetAvailability: resource id=%d not found", *req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("GetAvailability: failed to get resource id=%d: %v", *req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}
		if resource.Category != req.Category {
			uc.logger.Warn("GetAvailability: resource id=%d is %s, requested %s",
				resource.ID, resource.Category, req.Category)
			return nil, ErrCategoryMismatch
		}
		return []*domain.Resource{resource}, nil
	}

	resources, err := uc.resourceRepo.ListByCategory(ctx, req.Category)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list resources for category=%s: %v", req.Category, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}
	return resources, nil
}

func bookingsForResource(bookings []*domain.Booking, resourceID int64) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.ResourceID == resourceID {
			result = append(result, b)
		}
	}
	return result
}
