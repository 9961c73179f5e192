package models

import (
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

// CreateResourceRequest запрос на заведение нового ресурса персоналом
type CreateResourceRequest struct {
	ActorID int64
	Role    domain.Role

	Code     string
	Category domain.Category
	Name     string

	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	MaxBookingMinutes   int
	MinLeadMinutes      int
}

// ResourceResponse представление ресурса для API
type ResourceResponse struct {
	ID                  int64  `json:"id"`
	Code                string `json:"code"`
	Category            string `json:"category"`
	Name                string `json:"name"`
	OpenTime            string `json:"openTime"`
	CloseTime           string `json:"closeTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	MaxBookingMinutes   int    `json:"maxBookingMinutes"`
	MinLeadMinutes      int    `json:"minLeadMinutes"`
	Active              bool   `json:"active"`
	CreatedAt           string `json:"createdAt"`
}

// FromDomainResource конвертирует доменную модель ресурса в API-ответ
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:                  r.ID,
		Code:                r.Code,
		Category:            string(r.Category),
		Name:                r.Name,
		OpenTime:            r.OpenTime.String(),
		CloseTime:           r.CloseTime.String(),
		SlotDurationMinutes: r.SlotDurationMinutes,
		MaxBookingMinutes:   r.MaxBookingMinutes,
		MinLeadMinutes:      r.MinLeadMinutes,
		Active:              r.Active,
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
	}
}
