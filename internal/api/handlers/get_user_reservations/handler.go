package get_user_reservations

import (
	"errors"
	"net/http"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	"github.com/officely-app/Officely-BookingService/internal/api/middleware"
	reservationsService "github.com/officely-app/Officely-BookingService/internal/service/reservations"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgMissingUser   = "отсутствует ID пользователя"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: paid, status, paymentType, priceTotalMin/Max, pricePerDayMin/Max,
// bookedAtFrom/To, startDateFrom/To, endDateFrom/To, sortBy, order, page, pageSize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	serviceReq, err := ToServiceRequest(actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: user_id=%s, error=%v",
				actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved: user_id=%s, count=%d",
		actor.UserID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
