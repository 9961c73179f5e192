package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zarechye/booking-service/internal/api/handlers"
	uc "github.com/zarechye/booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgResourceNotFound = "ресурс не найден"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{category}/availability
// Query params: date (обязательный), resourceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryStr := vars["category"]

	dateStr := r.URL.Query().Get("date")
	resourceIDStr := r.URL.Query().Get("resourceId")

	req, err := ToUseCaseRequest(categoryStr, dateStr, resourceIDStr)
	if err != nil {
		h.logger.Warn("GET /resources/{category}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{category}/availability - Resource not found: category=%s", categoryStr)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, uc.ErrUnknownCategory),
			errors.Is(err, uc.ErrCategoryMismatch),
			errors.Is(err, uc.ErrInvalidInput):
			h.logger.Warn("GET /resources/{category}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{category}/availability - Failed: category=%s, error=%v",
				categoryStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{category}/availability - OK: category=%s, date=%s, resources=%d",
		categoryStr, dateStr, len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
