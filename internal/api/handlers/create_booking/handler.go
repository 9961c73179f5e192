package create_booking

import (
	"errors"
	"net/http"

	"github.com/zarechye/booking-service/internal/api/handlers"
	"github.com/zarechye/booking-service/internal/api/middleware"
	uc "github.com/zarechye/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgResourceNotFound   = "ресурс не найден"
	msgResourceInactive   = "ресурс временно не принимает бронирования"
	msgCategoryMismatch   = "тип услуги не относится к категории ресурса"
	msgInvalidDate        = "некорректная дата бронирования"
	msgTooLateToBook      = "слот уже нельзя забронировать, выберите более позднее время"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgSlotTaken          = "выбранный интервал уже занят"
	msgGuestBlacklisted   = "бронирование для этого номера телефона недоступно"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role := middleware.GetRole(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(userID, role)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, uc.ErrResourceInactive):
			h.logger.Warn("POST /bookings - Resource inactive: resource_id=%d", req.ResourceID)
			handlers.RespondBadRequest(w, msgResourceInactive)

		case errors.Is(err, uc.ErrCategoryMismatch):
			h.logger.Warn("POST /bookings - Category mismatch: resource_id=%d, subtype=%s",
				req.ResourceID, req.Subtype)
			handlers.RespondBadRequest(w, msgCategoryMismatch)

		case errors.Is(err, uc.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, uc.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, uc.ErrInvalidInterval), errors.Is(err, uc.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, uc.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: resource_id=%d, date=%s, time=%s",
				req.ResourceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, uc.ErrGuestBlacklisted):
			h.logger.Warn("POST /bookings - Guest blacklisted: phone=%s", req.CustomerPhone)
			handlers.RespondForbidden(w, msgGuestBlacklisted)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource_id=%d, error=%v",
				req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, resource_id=%d, status=%s, user_id=%d",
		result.ID, result.ResourceID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
