package create_reservation

import (
	"errors"
	"net/http"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	"github.com/officely-app/Officely-BookingService/internal/api/middleware"
	createReservation "github.com/officely-app/Officely-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgOfficeNotFound     = "офис не найден"
	msgDatesOverlap       = "офис уже забронирован на выбранные даты"
	msgDateInPast         = "даты бронирования не могут быть в прошлом"
	msgInvalidDates       = "дата начала должна быть раньше даты окончания"
	msgInvalidInput       = "некорректные данные бронирования"
	msgMissingUser        = "отсутствует ID пользователя"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrOverlap):
			h.logger.Warn("POST /reservations - Dates overlap: user_id=%s, office_id=%s", actor.UserID, req.OfficeID)
			handlers.RespondError(w, http.StatusConflict, msgDatesOverlap)

		case errors.Is(err, createReservation.ErrOfficeNotFound):
			h.logger.Warn("POST /reservations - Office not found: office_id=%s", req.OfficeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case errors.Is(err, createReservation.ErrDateInPast):
			h.logger.Warn("POST /reservations - Date in past: user_id=%s, office_id=%s", actor.UserID, req.OfficeID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrInvalidDates):
			h.logger.Warn("POST /reservations - Invalid dates: user_id=%s, office_id=%s", actor.UserID, req.OfficeID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, office_id=%s, error=%v",
				actor.UserID, req.OfficeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%s, user_id=%s, office_id=%s",
		result.ID, actor.UserID, req.OfficeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
