package search_offices

import (
	"context"
	"fmt"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// Request модель запроса поиска доступных офисов
type Request struct {
	StartDate time.Time // Первый день желаемого бронирования (включительно)
	EndDate   time.Time // Последний день желаемого бронирования (включительно)
	Filter    domain.OfficeFilter
	SortBy    *string
	Ascending bool
	Page      int
	PageSize  int
}

// OfficeResult офис с ценой, пересчитанной под спрос запрошенного диапазона
type OfficeResult struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	MetricArea           float64 `json:"metricArea"`
	Floor                int     `json:"floor"`
	RoomNumber           int     `json:"roomNumber"`
	Country              string  `json:"country"`
	City                 string  `json:"city"`
	PostalCode           string  `json:"postalCode"`
	Address              string  `json:"address"`
	Longitude            float64 `json:"longitude"`
	Latitude             float64 `json:"latitude"`
	BasePricePerDay      float64 `json:"basePricePerDay"`
	PriceMultiplier      float64 `json:"priceMultiplier"`
	EffectivePricePerDay float64 `json:"effectivePricePerDay"`
}

// Response модель ответа со списком доступных офисов
type Response struct {
	Offices []OfficeResult `json:"offices"`
}

// UseCase use case поиска офисов, свободных в диапазоне дат
type UseCase struct {
	officeRepo     OfficeRepository
	pricingService PricingService
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(officeRepo OfficeRepository, pricingService PricingService, logger Logger) *UseCase {
	return &UseCase{
		officeRepo:     officeRepo,
		pricingService: pricingService,
		logger:         logger,
	}
}

// Execute ищет офисы без активных бронирований, пересекающихся с
// запрошенным диапазоном, и пересчитывает цену каждого офиса через
// множитель спроса диапазона. Каждый поиск инкрементирует счетчики
// визитов диапазона - ошибка записи статистики не роняет поиск.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchOffices: validation failed: %v", err)
		return nil, err
	}

	startDate := domain.DateOnly(req.StartDate)
	endDate := domain.DateOnly(req.EndDate)

	uc.logger.Info("SearchOffices: dates=%s..%s, page=%d",
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat), req.Page)

	var sortField *domain.OfficeSortField
	if req.SortBy != nil {
		field := domain.OfficeSortField(*req.SortBy)
		if _, ok := field.Column(); !ok {
			return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, *req.SortBy)
		}
		sortField = &field
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}

	multiplier, err := uc.pricingService.ComputeMultiplier(ctx, startDate, endDate)
	if err != nil {
		uc.logger.Error("SearchOffices: failed to compute multiplier: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price multiplier: %v", ErrInternal, err)
	}

	offices, err := uc.officeRepo.FindAvailable(ctx, startDate, endDate, req.Filter, sortField, req.Ascending, page, pageSize)
	if err != nil {
		uc.logger.Error("SearchOffices: failed to find offices: %v", err)
		return nil, fmt.Errorf("%w: failed to find offices: %v", ErrInternal, err)
	}

	// Каждый просмотр диапазона - сигнал спроса для ценообразования
	if err := uc.pricingService.RecordVisit(ctx, startDate, endDate); err != nil {
		uc.logger.Warn("SearchOffices: failed to record visit: %v", err)
	}

	resp := &Response{
		Offices: make([]OfficeResult, 0, len(offices)),
	}

	for _, office := range offices {
		resp.Offices = append(resp.Offices, OfficeResult{
			ID:                   office.ID,
			Name:                 office.Name,
			MetricArea:           office.MetricArea,
			Floor:                office.Floor,
			RoomNumber:           office.RoomNumber,
			Country:              office.Country,
			City:                 office.City,
			PostalCode:           office.PostalCode,
			Address:              office.Address,
			Longitude:            office.Longitude,
			Latitude:             office.Latitude,
			BasePricePerDay:      office.Price,
			PriceMultiplier:      multiplier,
			EffectivePricePerDay: domain.Round2(office.Price * multiplier),
		})
	}

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}
	if domain.DateOnly(req.StartDate).After(domain.DateOnly(req.EndDate)) {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}
	return nil
}
