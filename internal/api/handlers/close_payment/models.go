package close_payment

import (
	"fmt"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/internal/service/bookings/models"
)

// ClosePaymentRequest HTTP request model
type ClosePaymentRequest struct {
	Method string `json:"method"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ClosePaymentRequest) ToServiceRequest(userID int64, role domain.Role) (*models.ClosePaymentRequest, error) {
	method, ok := domain.ParsePaymentMethod(r.Method)
	if !ok {
		return nil, fmt.Errorf("unknown payment method %q", r.Method)
	}

	return &models.ClosePaymentRequest{
		ActorID: userID,
		Role:    role,
		Method:  method,
	}, nil
}
