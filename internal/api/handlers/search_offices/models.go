package search_offices

import (
	"net/url"
	"strconv"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	searchOffices "github.com/officely-app/Officely-BookingService/internal/usecase/search_offices"
)

// ToUseCaseRequest формирует запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*searchOffices.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, query.Get("endDate"))
	if err != nil {
		return nil, err
	}

	req := &searchOffices.Request{
		StartDate: startDate,
		EndDate:   endDate,
		Page:      1,
		PageSize:  domain.DefaultPageSize,
	}

	if req.Filter.PricePerDayMin, err = parseFloat(query.Get("priceMin")); err != nil {
		return nil, err
	}
	if req.Filter.PricePerDayMax, err = parseFloat(query.Get("priceMax")); err != nil {
		return nil, err
	}
	if req.Filter.AreaMin, err = parseFloat(query.Get("areaMin")); err != nil {
		return nil, err
	}
	if req.Filter.AreaMax, err = parseFloat(query.Get("areaMax")); err != nil {
		return nil, err
	}

	if v := query.Get("country"); v != "" {
		req.Filter.Country = &v
	}
	if v := query.Get("city"); v != "" {
		req.Filter.City = &v
	}
	if v := query.Get("postalCode"); v != "" {
		req.Filter.PostalCode = &v
	}
	if v := query.Get("address"); v != "" {
		req.Filter.Address = &v
	}

	if v := query.Get("sortBy"); v != "" {
		req.SortBy = &v
	}
	req.Ascending = query.Get("order") != "desc"

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
