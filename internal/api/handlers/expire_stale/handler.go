package expire_stale

import (
	"net/http"

	"github.com/zarechye/booking-service/internal/api/handlers"
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

// ExpireStaleResponse результат принудительного истечения заявок
type ExpireStaleResponse struct {
	Expired int64 `json:"expired"`
}

// Handle POST /internal/bookings/expire-stale
// Вызывается внешним планировщиком, маршрут не выходит за пределы приватной сети
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	expired, err := h.service.ExpireStale(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/bookings/expire-stale - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/bookings/expire-stale - Done: expired=%d", expired)
	handlers.RespondJSON(w, http.StatusOK, ExpireStaleResponse{Expired: expired})
}
