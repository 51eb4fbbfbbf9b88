package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

type fakeTrafficRepo struct {
	stats   []*domain.TrafficStatistic
	average *float64
	stddev  *float64
	peak    *int

	saved    []*domain.TrafficStatistic
	rangeErr error
}

func (f *fakeTrafficRepo) GetByDateRange(_ context.Context, _, _ time.Time) ([]*domain.TrafficStatistic, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	return f.stats, nil
}

func (f *fakeTrafficRepo) SaveAll(_ context.Context, statistics []*domain.TrafficStatistic) error {
	f.saved = statistics
	return nil
}

func (f *fakeTrafficRepo) AverageSince(_ context.Context, _ time.Time) (*float64, error) {
	return f.average, nil
}

func (f *fakeTrafficRepo) StddevSince(_ context.Context, _ time.Time) (*float64, error) {
	return f.stddev, nil
}

func (f *fakeTrafficRepo) MaxBetween(_ context.Context, _, _ time.Time) (*int, error) {
	return f.peak, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func stat(day time.Time, count int) *domain.TrafficStatistic {
	return &domain.TrafficStatistic{ID: "s-" + day.Format(domain.DateFormat), Date: day, VisitorCount: count}
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestMultiplierFor(t *testing.T) {
	baseline := Baseline{Average: ptrFloat(100), Stddev: ptrFloat(20)}

	t.Run("PeakAboveAverageRaisesPrice", func(t *testing.T) {
		// (140 - 100) / 20 = 2, 1 + 2*0.5 = 2.0
		assert.InDelta(t, 2.0, MultiplierFor(140, baseline), 1e-9)
	})

	t.Run("PeakEqualToAverageIsNeutral", func(t *testing.T) {
		assert.InDelta(t, 1.0, MultiplierFor(100, baseline), 1e-9)
	})

	t.Run("PeakBelowAverageLowersPrice", func(t *testing.T) {
		// (80 - 100) / 20 = -1, 1 - 0.5 = 0.5
		assert.InDelta(t, 0.5, MultiplierFor(80, baseline), 1e-9)
	})

	t.Run("FloorAtMinMultiplier", func(t *testing.T) {
		assert.Equal(t, domain.MinPriceMultiplier, MultiplierFor(0, baseline))
	})

	t.Run("NoUpperCap", func(t *testing.T) {
		// (500 - 100) / 20 = 20, 1 + 10 = 11
		assert.InDelta(t, 11.0, MultiplierFor(500, baseline), 1e-9)
	})

	t.Run("Monotonic", func(t *testing.T) {
		prev := MultiplierFor(0, baseline)
		for count := 10; count <= 300; count += 10 {
			current := MultiplierFor(count, baseline)
			assert.GreaterOrEqual(t, current, prev)
			prev = current
		}
	})

	t.Run("ZeroStddevIsNeutral", func(t *testing.T) {
		flat := Baseline{Average: ptrFloat(100), Stddev: ptrFloat(0)}
		assert.Equal(t, domain.NeutralMultiplier, MultiplierFor(200, flat))
	})

	t.Run("MissingBaselineIsNeutral", func(t *testing.T) {
		assert.Equal(t, domain.NeutralMultiplier, MultiplierFor(200, Baseline{}))
	})
}

func TestService_ComputeMultiplier(t *testing.T) {
	ctx := context.Background()

	t.Run("NoStatisticsInRange", func(t *testing.T) {
		repo := &fakeTrafficRepo{average: ptrFloat(100), stddev: ptrFloat(20)}
		svc := NewService(repo, nil, nopLogger{})

		multiplier, err := svc.ComputeMultiplier(ctx, day(1), day(5))
		require.NoError(t, err)
		assert.Equal(t, domain.NeutralMultiplier, multiplier)
	})

	t.Run("NoUsableBaseline", func(t *testing.T) {
		repo := &fakeTrafficRepo{stats: []*domain.TrafficStatistic{stat(day(1), 50)}}
		svc := NewService(repo, nil, nopLogger{})

		multiplier, err := svc.ComputeMultiplier(ctx, day(1), day(5))
		require.NoError(t, err)
		assert.Equal(t, domain.NeutralMultiplier, multiplier)
	})

	t.Run("PeakDrivesMultiplier", func(t *testing.T) {
		repo := &fakeTrafficRepo{
			stats:   []*domain.TrafficStatistic{stat(day(1), 100), stat(day(2), 140)},
			average: ptrFloat(100),
			stddev:  ptrFloat(20),
			peak:    ptrInt(140),
		}
		svc := NewService(repo, nil, nopLogger{})

		multiplier, err := svc.ComputeMultiplier(ctx, day(1), day(5))
		require.NoError(t, err)
		assert.InDelta(t, 2.0, multiplier, 1e-9)
	})

	t.Run("RepositoryErrorIsPropagated", func(t *testing.T) {
		repo := &fakeTrafficRepo{rangeErr: errors.New("connection refused")}
		svc := NewService(repo, nil, nopLogger{})

		_, err := svc.ComputeMultiplier(ctx, day(1), day(5))
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_RecordVisit(t *testing.T) {
	ctx := context.Background()

	t.Run("IncrementsExistingAndCreatesMissing", func(t *testing.T) {
		repo := &fakeTrafficRepo{
			stats: []*domain.TrafficStatistic{stat(day(1), 5), stat(day(3), 7)},
		}
		svc := NewService(repo, nil, nopLogger{})

		err := svc.RecordVisit(ctx, day(1), day(3))
		require.NoError(t, err)
		require.Len(t, repo.saved, 3)

		byDate := make(map[string]int, len(repo.saved))
		for _, s := range repo.saved {
			byDate[s.Date.Format(domain.DateFormat)] = s.VisitorCount
		}

		assert.Equal(t, 6, byDate["2025-06-01"])
		assert.Equal(t, 1, byDate["2025-06-02"]) // новая запись
		assert.Equal(t, 8, byDate["2025-06-03"])
	})

	t.Run("SingleDayRange", func(t *testing.T) {
		repo := &fakeTrafficRepo{}
		svc := NewService(repo, nil, nopLogger{})

		err := svc.RecordVisit(ctx, day(10), day(10))
		require.NoError(t, err)
		require.Len(t, repo.saved, 1)
		assert.Equal(t, 1, repo.saved[0].VisitorCount)
	})
}
