package list_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zarechye/booking-service/internal/domain"
	"github.com/zarechye/booking-service/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из параметров URL
// Параметр date задает один день; from/to задают диапазон, date и from/to
// взаимоисключающие
func ToServiceRequest(
	userID int64,
	role domain.Role,
	categoryStr string,
	resourceIDStr string,
	dateStr string,
	fromStr string,
	toStr string,
	statusStr string,
	includeReleasedStr string,
) (*models.ListBookingsRequest, error) {
	category, ok := domain.ParseCategory(categoryStr)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", categoryStr)
	}

	req := &models.ListBookingsRequest{
		ActorID:  userID,
		Role:     role,
		Category: category,
	}

	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid resourceId: %w", err)
		}
		req.ResourceID = &resourceID
	}

	if dateStr != "" && (fromStr != "" || toStr != "") {
		return nil, fmt.Errorf("date and from/to are mutually exclusive")
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		req.StartDate = &from
	}
	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		status := domain.BookingStatus(statusStr)
		switch status {
		case domain.StatusPendingCall, domain.StatusConfirmed, domain.StatusCompleted,
			domain.StatusCancelled, domain.StatusNoShow, domain.StatusExpired:
			req.Status = &status
		default:
			return nil, fmt.Errorf("unknown status %q", statusStr)
		}
	}

	if includeReleasedStr != "" {
		includeReleased, err := strconv.ParseBool(includeReleasedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeReleased value: %w", err)
		}
		req.IncludeReleased = includeReleased
	}

	return req, nil
}
