package get_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	uc "github.com/zarechye/booking-service/internal/usecase/get_availability"
)

// ToUseCaseRequest формирует запрос к use case из параметров URL
func ToUseCaseRequest(categoryStr, dateStr, resourceIDStr string) (*uc.Request, error) {
	category, ok := domain.ParseCategory(categoryStr)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", categoryStr)
	}

	if dateStr == "" {
		return nil, fmt.Errorf("date parameter is required")
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	req := &uc.Request{
		Category: category,
		Date:     date,
	}

	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid resourceId: %w", err)
		}
		req.ResourceID = &resourceID
	}

	return req, nil
}

// AvailabilityResponse HTTP модель ответа доступности
type AvailabilityResponse struct {
	Date      string                         `json:"date"`
	Category  string                         `json:"category"`
	Resources []ResourceAvailabilityResponse `json:"resources"`
}

// ResourceAvailabilityResponse доступность одного ресурса на дату
type ResourceAvailabilityResponse struct {
	ResourceID int64          `json:"resourceId"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse слот сетки расписания
type SlotResponse struct {
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	Available          bool   `json:"available"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *uc.Response) *AvailabilityResponse {
	resources := make([]ResourceAvailabilityResponse, len(resp.Resources))
	for i, res := range resp.Resources {
		slots := make([]SlotResponse, len(res.Slots))
		for j, slot := range res.Slots {
			slots[j] = SlotResponse{
				StartTime:          slot.StartTime.String(),
				EndTime:            slot.EndTime.String(),
				Available:          slot.Available,
				MaxDurationMinutes: slot.MaxDurationMinutes,
			}
		}
		resources[i] = ResourceAvailabilityResponse{
			ResourceID: res.ResourceID,
			Code:       res.Code,
			Name:       res.Name,
			Slots:      slots,
		}
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Category:  string(resp.Category),
		Resources: resources,
	}
}
