package models

import (
	"time"

	"github.com/zarechye/booking-service/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID int64
	Role    domain.Role
	Reason  string
}

// AcceptBookingRequest запрос на подтверждение заявки
type AcceptBookingRequest struct {
	ActorID int64
	Role    domain.Role
}

// ClosePaymentRequest запрос на фиксацию способа оплаты
type ClosePaymentRequest struct {
	ActorID int64
	Role    domain.Role
	Method  domain.PaymentMethod
}

// SetDiscountRequest запрос на установку скидки владельцем
type SetDiscountRequest struct {
	ActorID         int64
	Role            domain.Role
	DiscountPercent int
}

// AttendanceRequest запрос на отметку приезда или неявки
type AttendanceRequest struct {
	ActorID int64
	Role    domain.Role
}

// ListBookingsRequest запрос списка бронирований персоналом
type ListBookingsRequest struct {
	ActorID  int64
	Role     domain.Role
	Category domain.Category
	// ResourceID фильтр по конкретному ресурсу (опционально)
	ResourceID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *domain.BookingStatus
	// IncludeReleased включает отмененные и истекшие бронирования
	IncludeReleased bool
}

// Response модели

// BookingResponse представление бронирования для API
type BookingResponse struct {
	ID              int64                  `json:"id"`
	ResourceID      int64                  `json:"resourceId"`
	Category        string                 `json:"category"`
	Subtype         string                 `json:"subtype"`
	BookingDate     string                 `json:"bookingDate"`
	StartTime       string                 `json:"startTime"`
	EndTime         string                 `json:"endTime"`
	DurationMinutes int                    `json:"durationMinutes"`
	GuestCount      int                    `json:"guestCount"`
	AddOns          []string               `json:"addOns"`
	Price           PriceBreakdownResponse `json:"price"`
	CustomerName    string                 `json:"customerName"`
	CustomerPhone   string                 `json:"customerPhone"`
	Status          string                 `json:"status"`
	PaymentMethod   *string                `json:"paymentMethod,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// PriceBreakdownResponse расценка бронирования для API
type PriceBreakdownResponse struct {
	BasePrice       float64 `json:"basePrice"`
	ExtraHoursPrice float64 `json:"extraHoursPrice"`
	AddOnsPrice     float64 `json:"addOnsPrice"`
	DiscountPercent int     `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	Total           float64 `json:"total"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в API-представление
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	addOns := make([]string, len(b.AddOns))
	for i, a := range b.AddOns {
		addOns[i] = string(a)
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ResourceID:      b.ResourceID,
		Category:        string(b.Category),
		Subtype:         string(b.Subtype),
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		GuestCount:      b.GuestCount,
		AddOns:          addOns,
		Price: PriceBreakdownResponse{
			BasePrice:       b.Price.BasePrice,
			ExtraHoursPrice: b.Price.ExtraHoursPrice,
			AddOnsPrice:     b.Price.AddOnsPrice,
			DiscountPercent: b.Price.DiscountPercent,
			DiscountAmount:  b.Price.DiscountAmount,
			Total:           b.Price.Total,
		},
		CustomerName:       b.Customer.Name,
		CustomerPhone:      b.Customer.Phone,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}
	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		resp.PaymentMethod = &method
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований в API-представление
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
