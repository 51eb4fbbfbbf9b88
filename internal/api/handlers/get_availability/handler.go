package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	"github.com/officely-app/Officely-BookingService/internal/domain"
	getAvailability "github.com/officely-app/Officely-BookingService/internal/usecase/get_availability"
)

const (
	msgOfficeNotFound = "офис не найден"
	msgInvalidMonth   = "некорректный формат месяца, ожидается YYYY-MM"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offices/{officeId}/availability
// Query params: month=YYYY-MM (опционально, по умолчанию текущий месяц)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	officeID := mux.Vars(r)["officeId"]

	month := time.Now()
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := time.Parse(domain.MonthFormat, monthStr)
		if err != nil {
			h.logger.Warn("GET /offices/{id}/availability - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		month = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		OfficeID: officeID,
		Month:    month,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrOfficeNotFound):
			h.logger.Warn("GET /offices/{id}/availability - Office not found: office_id=%s", officeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /offices/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /offices/{id}/availability - Failed: office_id=%s, error=%v", officeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /offices/{id}/availability - Calendar built: office_id=%s, month=%s, free_days=%d",
		officeID, response.Month, len(response.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
