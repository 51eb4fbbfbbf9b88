package search_offices

import (
	"context"

	searchOffices "github.com/officely-app/Officely-BookingService/internal/usecase/search_offices"
)

type SearchOfficesUseCase interface {
	Execute(ctx context.Context, req *searchOffices.Request) (*searchOffices.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
