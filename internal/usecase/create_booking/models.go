package create_booking

import (
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID      int64
	Subtype         domain.Subtype
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	GuestCount      int
	AddOns          []domain.AddOn

	CustomerName  string
	CustomerPhone string

	// CreatedBy ID пользователя из заголовка шлюза; Role определяет начальный статус:
	// заявка персонала подтверждается сразу, гостевая ждет звонка
	CreatedBy int64
	Role      domain.Role
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ResourceID      int64
	ResourceCode    string
	Category        domain.Category
	Subtype         domain.Subtype
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	GuestCount      int
	AddOns          []domain.AddOn
	Price           domain.PriceBreakdown
	CustomerName    string
	CustomerPhone   string
	Status          domain.BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
