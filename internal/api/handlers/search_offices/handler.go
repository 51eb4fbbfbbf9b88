package search_offices

import (
	"errors"
	"net/http"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	searchOffices "github.com/officely-app/Officely-BookingService/internal/usecase/search_offices"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase SearchOfficesUseCase
	logger  Logger
}

func NewHandler(useCase SearchOfficesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offices/search
// Query params: startDate, endDate (обязательные), priceMin, priceMax,
// areaMin, areaMax, country, city, postalCode, address, sortBy, order, page, pageSize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /offices/search - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchOffices.ErrInvalidInput):
			h.logger.Warn("GET /offices/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /offices/search - Failed to search offices: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offices/search - Offices found: count=%d", len(result.Offices))
	handlers.RespondJSON(w, http.StatusOK, result)
}
