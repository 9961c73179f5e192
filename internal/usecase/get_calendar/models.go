package get_calendar

import (
	"time"

	"github.com/zarechye/booking-service/internal/domain"
)

// maxRangeDays максимальный размер запрашиваемого диапазона дат
const maxRangeDays = 92

// Request модель запроса календарного обзора
type Request struct {
	Category domain.Category
	From     time.Time // Начало диапазона (включительно)
	To       time.Time // Конец диапазона (включительно)
}

// Response модель ответа с обзором по дням
type Response struct {
	Category domain.Category
	Days     []DayOverview
}

// DayOverview агрегированная занятость категории за день
type DayOverview struct {
	Date time.Time
	// HasBookings хотя бы один слот категории занят, но не все
	HasBookings bool
	// FullyBooked заняты все слоты всех ресурсов категории, предлагающих слоты в этот день
	FullyBooked bool
}
