package create_booking

import (
	"fmt"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	uc "github.com/zarechye/booking-service/internal/usecase/create_booking"
	"github.com/zarechye/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID      int64    `json:"resourceId"`
	Subtype         string   `json:"subtype"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	GuestCount      int      `json:"guestCount"`
	AddOns          []string `json:"addOns,omitempty"`
	CustomerName    string   `json:"customerName"`
	CustomerPhone   string   `json:"customerPhone"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
// Идентификатор и роль берутся из контекста, а не из тела запроса:
// клиент не может назначить себе чужую роль
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, role domain.Role) (*uc.Request, error) {
	subtype, ok := domain.ParseSubtype(r.Subtype)
	if !ok {
		return nil, fmt.Errorf("unknown subtype %q", r.Subtype)
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	addOns := make([]domain.AddOn, 0, len(r.AddOns))
	for _, s := range r.AddOns {
		addOn, ok := domain.ParseAddOn(s)
		if !ok {
			// Неизвестные услуги игнорируются при расценке, но на входе API
			// отклоняем: опечатка клиента не должна молча терять услугу
			return nil, fmt.Errorf("unknown add-on %q", s)
		}
		addOns = append(addOns, addOn)
	}

	return &uc.Request{
		ResourceID:      r.ResourceID,
		Subtype:         subtype,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		GuestCount:      r.GuestCount,
		AddOns:          addOns,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CreatedBy:       userID,
		Role:            role,
	}, nil
}

// BookingResponse HTTP модель созданного бронирования
type BookingResponse struct {
	ID              int64         `json:"id"`
	ResourceID      int64         `json:"resourceId"`
	ResourceCode    string        `json:"resourceCode"`
	Category        string        `json:"category"`
	Subtype         string        `json:"subtype"`
	Date            string        `json:"date"`
	StartTime       string        `json:"startTime"`
	EndTime         string        `json:"endTime"`
	DurationMinutes int           `json:"durationMinutes"`
	GuestCount      int           `json:"guestCount"`
	AddOns          []string      `json:"addOns"`
	Price           PriceResponse `json:"price"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	Status          string        `json:"status"`
	CreatedAt       string        `json:"createdAt"`
}

// PriceResponse расценка бронирования
type PriceResponse struct {
	BasePrice       float64 `json:"basePrice"`
	ExtraHoursPrice float64 `json:"extraHoursPrice"`
	AddOnsPrice     float64 `json:"addOnsPrice"`
	DiscountPercent int     `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	Total           float64 `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *uc.Response) *BookingResponse {
	addOns := make([]string, len(resp.AddOns))
	for i, a := range resp.AddOns {
		addOns[i] = string(a)
	}

	return &BookingResponse{
		ID:              resp.ID,
		ResourceID:      resp.ResourceID,
		ResourceCode:    resp.ResourceCode,
		Category:        string(resp.Category),
		Subtype:         string(resp.Subtype),
		Date:            resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		GuestCount:      resp.GuestCount,
		AddOns:          addOns,
		Price: PriceResponse{
			BasePrice:       resp.Price.BasePrice,
			ExtraHoursPrice: resp.Price.ExtraHoursPrice,
			AddOnsPrice:     resp.Price.AddOnsPrice,
			DiscountPercent: resp.Price.DiscountPercent,
			DiscountAmount:  resp.Price.DiscountAmount,
			Total:           resp.Price.Total,
		},
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		Status:        string(resp.Status),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
