package cancel_booking

import (
	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64, role domain.Role) *models.CancelBookingRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelBookingRequest{
		ActorID: userID,
		Role:    role,
		Reason:  reason,
	}
}
