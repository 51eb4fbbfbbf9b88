package update_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	"github.com/officely-app/Officely-BookingService/internal/api/middleware"
	reservationsService "github.com/officely-app/Officely-BookingService/internal/service/reservations"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgReservationNotFound = "бронирование не найдено"
	msgNotPending          = "изменять можно только ожидающие бронирования"
	msgDatesOverlap        = "новые даты пересекаются с другим бронированием"
	msgDateInPast          = "даты бронирования не могут быть в прошлом"
	msgInvalidDates        = "дата начала должна быть раньше даты окончания"
	msgInvalidInput        = "некорректные данные бронирования"
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

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	reservationID := mux.Vars(r)["reservationId"]

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Update(r.Context(), reservationID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Not found: reservation_id=%s, user_id=%s", reservationID, actor.UserID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservationsService.ErrNotPending):
			h.logger.Warn("PUT /reservations/{id} - Not pending: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, reservationsService.ErrOverlap):
			h.logger.Warn("PUT /reservations/{id} - Dates overlap: reservation_id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgDatesOverlap)

		case errors.Is(err, reservationsService.ErrDateInPast):
			h.logger.Warn("PUT /reservations/{id} - Date in past: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, reservationsService.ErrInvalidDates):
			h.logger.Warn("PUT /reservations/{id} - Invalid dates: reservation_id=%s", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%s, user_id=%s",
		reservationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
