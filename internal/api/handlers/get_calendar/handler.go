package get_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zarechye/booking-service/internal/api/handlers"
	uc "github.com/zarechye/booking-service/internal/usecase/get_calendar"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgRangeTooWide  = "слишком широкий диапазон дат"
)

type Handler struct {
	useCase CalendarUseCase
	logger  Logger
}

func NewHandler(useCase CalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{category}/calendar-availability
// Query params: from, to (обе даты обязательны, диапазон включительный)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryStr := vars["category"]

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	req, err := ToUseCaseRequest(categoryStr, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /resources/{category}/calendar-availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrRangeTooWide):
			h.logger.Warn("GET /resources/{category}/calendar-availability - Range too wide: from=%s, to=%s",
				fromStr, toStr)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, uc.ErrUnknownCategory), errors.Is(err, uc.ErrInvalidRange):
			h.logger.Warn("GET /resources/{category}/calendar-availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{category}/calendar-availability - Failed: category=%s, error=%v",
				categoryStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{category}/calendar-availability - OK: category=%s, days=%d",
		categoryStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
