package get_availability

import (
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/pkg/types"
)

// Request модель запроса доступности
type Request struct {
	Category   domain.Category // Категория ресурсов
	ResourceID *int64          // Конкретный ресурс (опционально, иначе вся категория)
	Date       time.Time       // Дата, на которую запрашиваются слоты
}

// Response модель ответа с доступностью по ресурсам категории
type Response struct {
	Date      time.Time
	Category  domain.Category
	Resources []ResourceAvailability
}

// ResourceAvailability доступность одного ресурса на дату
type ResourceAvailability struct {
	ResourceID int64
	Code       string
	Name       string
	Slots      []Slot
}

// Slot слот сетки ресурса с признаком занятости и максимальной длительностью
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	// MaxDurationMinutes максимальная длительность бронирования, начинающегося
	// в этом слоте: зазор до следующего занятого интервала, ограниченный временем
	// закрытия и максимумом ресурса; 0 для занятых слотов
	MaxDurationMinutes int
}
