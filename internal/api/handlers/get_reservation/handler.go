package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	"github.com/officely-app/Officely-BookingService/internal/api/middleware"
	reservationsService "github.com/officely-app/Officely-BookingService/internal/service/reservations"
)

const (
	msgReservationNotFound = "бронирование не найдено"
	msgMissingID           = "не указан идентификатор бронирования"
	msgMissingUser         = "отсутствует ID пользователя"
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

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		handlers.RespondBadRequest(w, msgMissingID)
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - Not found: reservation_id=%s, user_id=%s", reservationID, actor.UserID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		default:
			h.logger.Error("GET /reservations/{id} - Failed: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
