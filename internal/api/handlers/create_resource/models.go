package create_resource

import (
	"fmt"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/internal/service/resources/models"
	"github.com/zarechye/booking-service/pkg/types"
)

// CreateResourceRequest HTTP request model
type CreateResourceRequest struct {
	Code                string `json:"code"`
	Category            string `json:"category"`
	Name                string `json:"name"`
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	MaxBookingMinutes   int    `json:"maxBookingMinutes"`
	MinLeadMinutes      int    `json:"minLeadMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
// Идентификатор и роль берутся из контекста, а не из тела запроса
func (r *CreateResourceRequest) ToServiceRequest(userID int64, role domain.Role) (*models.CreateResourceRequest, error) {
	category, ok := domain.ParseCategory(r.Category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", r.Category)
	}

	openTime, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid openTime: %w", err)
	}

	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid closeTime: %w", err)
	}

	return &models.CreateResourceRequest{
		ActorID:  userID,
		Role:     role,
		Code:     r.Code,
		Category: category,
		Name:     r.Name,

		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		MaxBookingMinutes:   r.MaxBookingMinutes,
		MinLeadMinutes:      r.MinLeadMinutes,
	}, nil
}
