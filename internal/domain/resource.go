package domain

import (
	"time"

	"github.com/zarechye/booking-service/pkg/types"
)

// Category категория бронируемого ресурса
type Category string

const (
	CategoryBath Category = "bath"
	CategorySpa  Category = "spa"
	CategoryQuad Category = "quad"
)

// ParseCategory валидирует и возвращает категорию ресурса
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryBath, CategorySpa, CategoryQuad:
		return Category(s), true
	default:
		return "", false
	}
}

// Resource бронируемый физический объект: банный комплекс, SPA-комплекс, пул квадроциклов
// Параметры (часы работы, шаг сетки, минимальное упреждение) задаются персоналом
// при заведении ресурса и могут отличаться между ресурсами одной категории
type Resource struct {
	ID       int64
	Code     string // Уникальный код, например "SPA1"
	Category Category
	Name     string

	OpenTime  types.TimeString
	CloseTime types.TimeString
	// SlotDurationMinutes шаг сетки слотов (обычно 60)
	SlotDurationMinutes int
	// MaxBookingMinutes максимальная длительность одного бронирования
	MaxBookingMinutes int
	// MinLeadMinutes минимальное упреждение: на сегодня нельзя бронировать слоты,
	// начинающиеся раньше чем now + MinLeadMinutes
	MinLeadMinutes int

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkingMinutes возвращает длину рабочего дня ресурса в минутах
func (r *Resource) WorkingMinutes() (int, error) {
	return r.OpenTime.MinutesUntil(r.CloseTime)
}
