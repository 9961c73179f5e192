package domain

// Значения по умолчанию для параметров ресурсов
// Применяются при заведении ресурса, если персонал не указал свои
const (
	DefaultSlotDurationMinutes = 60
	DefaultMaxBookingMinutes   = 300 // 5 часов
	DefaultMinLeadMinutes      = 180 // 3 часа
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240

	MinDiscountPercent = 0
	MaxDiscountPercent = 100

	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
	MaxCustomerPhoneLength      = 32
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ReleasedStatuses статусы, освобождающие интервал ресурса
// Используются при фильтрации бронирований для подсчета доступности
var ReleasedStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
}

// TerminalStatuses статусы, из которых переходы запрещены
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
	StatusExpired,
}

// Role роль пользователя, передается шлюзом в заголовке X-User-Role
// Проверки ролей в UI только подсказки отображения; авторитетная проверка здесь
type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
	RoleOwner Role = "owner"
)

// ParseRole валидирует и возвращает роль; пустое значение трактуется как guest
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleGuest, true
	case RoleGuest, RoleStaff, RoleOwner:
		return Role(s), true
	default:
		return "", false
	}
}

// IsStaff возвращает true для персонала и владельца
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleOwner
}
