package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	officestorage "github.com/officely-app/Officely-BookingService/internal/infra/storage/office"
	"github.com/officely-app/Officely-BookingService/internal/service/pricing"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetByOfficeOverlapping(_ context.Context, _ string, _, _ time.Time) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeOfficeRepo struct {
	exists bool
}

func (f *fakeOfficeRepo) GetByID(_ context.Context, id string) (*domain.Office, error) {
	if !f.exists {
		return nil, officestorage.ErrOfficeNotFound
	}
	return &domain.Office{ID: id}, nil
}

type fakeTrafficRepo struct {
	stats []*domain.TrafficStatistic
}

func (f *fakeTrafficRepo) GetByDateRange(_ context.Context, _, _ time.Time) ([]*domain.TrafficStatistic, error) {
	return f.stats, nil
}

type fakePricing struct {
	baseline pricing.Baseline
}

func (f *fakePricing) CurrentBaseline(_ context.Context) (pricing.Baseline, error) {
	return f.baseline, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func ptrFloat(v float64) *float64 { return &v }

func collect(resp *Response) []domain.AvailableDay {
	var days []domain.AvailableDay
	for d := range resp.Days {
		days = append(days, d)
	}
	return days
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	baseline := pricing.Baseline{Average: ptrFloat(100), Stddev: ptrFloat(20)}

	t.Run("SkipsReservedDaysAndPricesTheRest", func(t *testing.T) {
		uc := NewUseCase(
			&fakeReservationRepo{reservations: []*domain.Reservation{
				{StartDate: day(5), EndDate: day(10), Status: domain.StatusPending},
			}},
			&fakeOfficeRepo{exists: true},
			&fakeTrafficRepo{stats: []*domain.TrafficStatistic{
				{Date: day(1), VisitorCount: 140},
			}},
			&fakePricing{baseline: baseline},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{OfficeID: "office-1", Month: day(17)})
		require.NoError(t, err)

		days := collect(resp)
		require.Len(t, days, 24) // 30 дней июня минус 6 занятых (5..10 включительно)

		byDate := make(map[string]float64, len(days))
		for _, d := range days {
			byDate[d.Date.Format(domain.DateFormat)] = d.PriceMultiplier
		}

		// День со статистикой: (140-100)/20 * 0.5 + 1 = 2.0
		assert.InDelta(t, 2.0, byDate["2025-06-01"], 1e-9)
		// День без статистики - нейтральный множитель
		assert.Equal(t, domain.NeutralMultiplier, byDate["2025-06-02"])
		// Занятые дни отсутствуют
		_, reserved := byDate["2025-06-07"]
		assert.False(t, reserved)
	})

	t.Run("CancelledReservationDoesNotBlock", func(t *testing.T) {
		uc := NewUseCase(
			&fakeReservationRepo{reservations: []*domain.Reservation{
				{StartDate: day(5), EndDate: day(10), Status: domain.StatusCancelled},
			}},
			&fakeOfficeRepo{exists: true},
			&fakeTrafficRepo{},
			&fakePricing{baseline: baseline},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{OfficeID: "office-1", Month: day(1)})
		require.NoError(t, err)
		assert.Len(t, collect(resp), 30)
	})

	t.Run("SequenceIsRestartable", func(t *testing.T) {
		uc := NewUseCase(
			&fakeReservationRepo{},
			&fakeOfficeRepo{exists: true},
			&fakeTrafficRepo{},
			&fakePricing{baseline: baseline},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{OfficeID: "office-1", Month: day(1)})
		require.NoError(t, err)

		first := collect(resp)
		second := collect(resp)
		assert.Equal(t, first, second)
	})

	t.Run("EarlyBreakStopsIteration", func(t *testing.T) {
		uc := NewUseCase(
			&fakeReservationRepo{},
			&fakeOfficeRepo{exists: true},
			&fakeTrafficRepo{},
			&fakePricing{baseline: baseline},
			nopLogger{},
		)

		resp, err := uc.Execute(ctx, &Request{OfficeID: "office-1", Month: day(1)})
		require.NoError(t, err)

		count := 0
		for range resp.Days {
			count++
			if count == 3 {
				break
			}
		}
		assert.Equal(t, 3, count)
	})

	t.Run("OfficeNotFound", func(t *testing.T) {
		uc := NewUseCase(
			&fakeReservationRepo{},
			&fakeOfficeRepo{},
			&fakeTrafficRepo{},
			&fakePricing{baseline: baseline},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{OfficeID: "missing", Month: day(1)})
		assert.ErrorIs(t, err, ErrOfficeNotFound)
	})

	t.Run("MissingOfficeID", func(t *testing.T) {
		uc := NewUseCase(
			&fakeReservationRepo{},
			&fakeOfficeRepo{exists: true},
			&fakeTrafficRepo{},
			&fakePricing{baseline: baseline},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{Month: day(1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
