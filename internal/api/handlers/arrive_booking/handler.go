package arrive_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zarechye/booking-service/internal/api/handlers"
	"github.com/zarechye/booking-service/internal/api/middleware"
	"github.com/zarechye/booking-service/internal/service/bookings"
	"github.com/zarechye/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
	msgIllegalTransition = "приезд можно отметить только для подтвержденного бронирования"
	msgTooEarly          = "визит еще не начался"
	msgTooLate           = "день визита уже прошел"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/arrive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/arrive - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/arrive - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.AttendanceRequest{
		ActorID: userID,
		Role:    middleware.GetRole(r.Context()),
	}

	result, err := h.service.MarkArrived(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/arrive - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/arrive - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrIllegalTransition):
			h.logger.Warn("POST /bookings/{id}/arrive - Illegal transition: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgIllegalTransition)

		case errors.Is(err, bookings.ErrTooEarly):
			h.logger.Warn("POST /bookings/{id}/arrive - Too early: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooEarly)

		case errors.Is(err, bookings.ErrTooLate):
			h.logger.Warn("POST /bookings/{id}/arrive - Too late: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooLate)

		default:
			h.logger.Error("POST /bookings/{id}/arrive - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/arrive - Arrival marked: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
