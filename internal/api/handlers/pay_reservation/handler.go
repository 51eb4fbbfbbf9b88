package pay_reservation

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
	msgAlreadyPaid         = "бронирование уже оплачено"
	msgCashPayment         = "бронирования с оплатой наличными нельзя оплатить онлайн"
	msgNotPending          = "оплатить можно только ожидающее бронирование"
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

// Handle POST /api/v1/reservations/{reservationId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/pay - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.service.Pay(r.Context(), actor, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/pay - Not found: reservation_id=%s, user_id=%s",
				reservationID, actor.UserID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrAlreadyPaid):
			h.logger.Warn("POST /reservations/{id}/pay - Already paid: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		case errors.Is(err, reservationsService.ErrCashPayment):
			h.logger.Warn("POST /reservations/{id}/pay - Cash payment: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgCashPayment)

		case errors.Is(err, reservationsService.ErrNotPending):
			h.logger.Warn("POST /reservations/{id}/pay - Not pending: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		default:
			h.logger.Error("POST /reservations/{id}/pay - Failed to pay: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/pay - Reservation paid: reservation_id=%s, user_id=%s",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
