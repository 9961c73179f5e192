package domain

import (
	"time"

	"github.com/zarechye/booking-service/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	// StatusPendingCall гостевая заявка, ожидает подтверждения по телефону
	StatusPendingCall BookingStatus = "pending_call"
	// StatusConfirmed подтверждено администратором
	StatusConfirmed BookingStatus = "confirmed"
	// StatusCompleted гости приехали, визит состоялся
	StatusCompleted BookingStatus = "completed"
	// StatusCancelled отменено гостем или персоналом
	StatusCancelled BookingStatus = "cancelled"
	// StatusNoShow гости не приехали (отдельно от отмены для отчетности)
	StatusNoShow BookingStatus = "no_show"
	// StatusExpired заявка не подтверждена вовремя и истекла
	StatusExpired BookingStatus = "expired"
)

// PaymentMethod способ оплаты, фиксируется при закрытии бронирования
type PaymentMethod string

const (
	PaymentERIP PaymentMethod = "erip"
	PaymentCash PaymentMethod = "cash"
)

// Customer контактные данные гостя
type Customer struct {
	Name       string
	Phone      string
	ExternalID *string // ID гостя во внешнем профиле (опционально)
}

// Booking бронирование одного ресурса на один непрерывный интервал в рамках одной даты
type Booking struct {
	ID              int64
	ResourceID      int64
	Category        Category
	Subtype         Subtype
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	GuestCount      int
	AddOns          []AddOn
	Price           PriceBreakdown
	Customer        Customer
	Status          BookingStatus
	PaymentMethod   *PaymentMethod

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedBy int64 // ID пользователя, создавшего бронирование (0 для гостя без сессии)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания бронирования
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsTerminal возвращает true для терминальных статусов, из которых переходы запрещены
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled ||
		b.Status == StatusCompleted ||
		b.Status == StatusNoShow ||
		b.Status == StatusExpired
}

// OccupiesInterval возвращает true, если бронирование продолжает занимать интервал ресурса
// Отмененные и истекшие заявки освобождают интервал немедленно; состоявшиеся визиты
// и no-show продолжают занимать его до конца дня
func (b *Booking) OccupiesInterval() bool {
	return b.Status != StatusCancelled && b.Status != StatusExpired
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// ResourceBookingsFilter фильтр для выборки бронирований
type ResourceBookingsFilter struct {
	ResourceID *int64         // Конкретный ресурс (опционально)
	Category   *Category      // Все ресурсы категории (опционально)
	StartDate  *time.Time     // Начало периода (опционально)
	EndDate    *time.Time     // Конец периода (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
	// IncludeReleased включает отмененные и истекшие бронирования в выборку
	IncludeReleased bool
}
