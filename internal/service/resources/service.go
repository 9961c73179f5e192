package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/zarechye/booking-service/internal/domain"
	resourceRepo "github.com/zarechye/booking-service/internal/infra/storage/resource"
	"github.com/zarechye/booking-service/internal/service/resources/models"
)

// Service сервис заведения ресурсов персоналом
type Service struct {
	resourceRepo ResourceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса ресурсов
func NewService(resourceRepo ResourceRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create заводит новый бронируемый ресурс
// Код проверяется на уникальность до вставки; гонку двух одновременных
// заведений одного кода закрывает уникальный индекс в базе
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	if !req.Role.IsStaff() {
		s.logger.Warn("CreateResource: user=%d role=%s denied", req.ActorID, req.Role)
		return nil, ErrAccessDenied
	}

	resource := &domain.Resource{
		Code:                req.Code,
		Category:            req.Category,
		Name:                req.Name,
		OpenTime:            req.OpenTime,
		CloseTime:           req.CloseTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		MaxBookingMinutes:   req.MaxBookingMinutes,
		MinLeadMinutes:      req.MinLeadMinutes,
		Active:              true,
	}

	if err := validateResource(resource); err != nil {
		s.logger.Warn("CreateResource: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("CreateResource: code=%s category=%s by user=%d", req.Code, req.Category, req.ActorID)

	var created *domain.Resource
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.resourceRepo.GetByCode(txCtx, req.Code)
		if err == nil {
			return ErrCodeTaken
		}
		if !errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Error("CreateResource: failed to check code %s: %v", req.Code, err)
			return fmt.Errorf("%w: Create - check code: %v", ErrInternal, err)
		}

		created, err = s.resourceRepo.Create(txCtx, resource)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrDuplicateCode) {
				return ErrCodeTaken
			}
			s.logger.Error("CreateResource: failed to create resource: %v", err)
			return fmt.Errorf("%w: Create - insert: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateResource: resource id=%d code=%s created", created.ID, created.Code)
	return models.FromDomainResource(created), nil
}

// validateResource проверяет параметры ресурса перед заведением
func validateResource(r *domain.Resource) error {
	if r.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := r.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInvalidInput, err)
	}
	if err := r.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInvalidInput, err)
	}

	working, err := r.WorkingMinutes()
	if err != nil || working <= 0 {
		return fmt.Errorf("%w: close time must be after open time", ErrInvalidInput)
	}

	if r.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidInput)
	}
	if r.MinLeadMinutes < 0 {
		return fmt.Errorf("%w: min lead time cannot be negative", ErrInvalidInput)
	}

	minBooking := domain.MinBookingMinutes(r.Category)
	if r.MaxBookingMinutes < minBooking {
		return fmt.Errorf("%w: max booking duration is below the category minimum %d",
			ErrInvalidInput, minBooking)
	}
	if r.MaxBookingMinutes > working {
		return fmt.Errorf("%w: max booking duration exceeds the working day (%d minutes)",
			ErrInvalidInput, working)
	}

	return nil
}
