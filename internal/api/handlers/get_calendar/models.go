package get_calendar

import (
	"fmt"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	uc "github.com/zarechye/booking-service/internal/usecase/get_calendar"
)

// ToUseCaseRequest формирует запрос к use case из параметров URL
func ToUseCaseRequest(categoryStr, fromStr, toStr string) (*uc.Request, error) {
	category, ok := domain.ParseCategory(categoryStr)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", categoryStr)
	}

	if fromStr == "" || toStr == "" {
		return nil, fmt.Errorf("from and to parameters are required")
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %w", err)
	}

	return &uc.Request{
		Category: category,
		From:     from,
		To:       to,
	}, nil
}

// CalendarResponse HTTP модель календарного обзора
type CalendarResponse struct {
	Category string                `json:"category"`
	Days     []DayOverviewResponse `json:"days"`
}

// DayOverviewResponse агрегированная занятость категории за день
type DayOverviewResponse struct {
	Date        string `json:"date"`
	HasBookings bool   `json:"hasBookings"`
	FullyBooked bool   `json:"fullyBooked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *uc.Response) *CalendarResponse {
	days := make([]DayOverviewResponse, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayOverviewResponse{
			Date:        day.Date.Format(domain.DateFormat),
			HasBookings: day.HasBookings,
			FullyBooked: day.FullyBooked,
		}
	}

	return &CalendarResponse{
		Category: string(resp.Category),
		Days:     days,
	}
}
