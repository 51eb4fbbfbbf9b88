package get_user_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	"github.com/officely-app/Officely-BookingService/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Все параметры фильтра опциональны; некорректное значение любого
// из них приводит к ошибке парсинга.
func ToServiceRequest(actor domain.Actor, query url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		Actor:    actor,
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if v := query.Get("paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.Filter.Paid = &paid
	}

	if v := query.Get("status"); v != "" {
		status, err := models.ToDomainStatus(v)
		if err != nil {
			return nil, err
		}
		req.Filter.Status = &status
	}

	if v := query.Get("paymentType"); v != "" {
		paymentType, err := models.ToDomainPaymentType(v)
		if err != nil {
			return nil, err
		}
		req.Filter.PaymentType = &paymentType
	}

	var err error

	if req.Filter.PriceTotalMin, err = parseFloat(query.Get("priceTotalMin")); err != nil {
		return nil, err
	}
	if req.Filter.PriceTotalMax, err = parseFloat(query.Get("priceTotalMax")); err != nil {
		return nil, err
	}
	if req.Filter.PricePerDayMin, err = parseFloat(query.Get("pricePerDayMin")); err != nil {
		return nil, err
	}
	if req.Filter.PricePerDayMax, err = parseFloat(query.Get("pricePerDayMax")); err != nil {
		return nil, err
	}

	if req.Filter.BookedAtFrom, err = parseDate(query.Get("bookedAtFrom")); err != nil {
		return nil, err
	}
	if req.Filter.BookedAtTo, err = parseDate(query.Get("bookedAtTo")); err != nil {
		return nil, err
	}
	if req.Filter.StartDateFrom, err = parseDate(query.Get("startDateFrom")); err != nil {
		return nil, err
	}
	if req.Filter.StartDateTo, err = parseDate(query.Get("startDateTo")); err != nil {
		return nil, err
	}
	if req.Filter.EndDateFrom, err = parseDate(query.Get("endDateFrom")); err != nil {
		return nil, err
	}
	if req.Filter.EndDateTo, err = parseDate(query.Get("endDateTo")); err != nil {
		return nil, err
	}

	if v := query.Get("sortBy"); v != "" {
		req.SortBy = &v
	}
	req.Ascending = query.Get("order") == "asc"

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}

	if v := query.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.PageSize = pageSize
	}

	return req, nil
}

func parseFloat(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
