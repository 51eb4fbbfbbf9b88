package cancel_reservation

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
	msgAlreadyCancelled    = "бронирование уже отменено"
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	if err := h.service.Cancel(r.Context(), actor, reservationID); err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%s, user_id=%s",
				reservationID, actor.UserID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Already cancelled: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%s, user_id=%s",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
