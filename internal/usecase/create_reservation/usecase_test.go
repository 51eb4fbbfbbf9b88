package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	officestorage "github.com/officely-app/Officely-BookingService/internal/infra/storage/office"
)

type fakeReservationRepo struct {
	overlap bool
	created *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	copied := *reservation
	copied.ID = "res-new"
	f.created = &copied
	return &copied, nil
}

func (f *fakeReservationRepo) ExistsOverlapping(_ context.Context, _ string, _, _ time.Time, _ *string) (bool, error) {
	return f.overlap, nil
}

type fakeOfficeRepo struct {
	office *domain.Office
}

func (f *fakeOfficeRepo) GetByID(_ context.Context, id string) (*domain.Office, error) {
	if f.office == nil || f.office.ID != id {
		return nil, officestorage.ErrOfficeNotFound
	}
	return f.office, nil
}

type fakePricing struct {
	multiplier float64
}

func (f *fakePricing) ComputeMultiplier(_ context.Context, _, _ time.Time) (float64, error) {
	return f.multiplier, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(reservationRepo *fakeReservationRepo, officeRepo *fakeOfficeRepo, multiplier float64) *UseCase {
	uc := NewUseCase(reservationRepo, officeRepo, &fakePricing{multiplier: multiplier}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:      "user-1",
		OfficeID:    "office-1",
		StartDate:   now.AddDate(0, 0, 10),
		EndDate:     now.AddDate(0, 0, 15),
		PaymentType: "CARD",
	}
}

func testOffice() *domain.Office {
	return &domain.Office{ID: "office-1", Name: "Downtown Loft", Price: 120}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newUseCase(repo, &fakeOfficeRepo{office: testOffice()}, 1.5)

		resp, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, "res-new", resp.ID)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, int64(5), resp.DurationDays)
		assert.Equal(t, 120.0, resp.PricePerDay)
		assert.Equal(t, 1.5, resp.PriceMultiplier)
		assert.Equal(t, 900.0, resp.TotalPrice) // 5 * 120 * 1.5
		assert.False(t, resp.Paid)

		// booked_at - дата без времени суток
		assert.Equal(t, domain.DateOnly(now), repo.created.BookedAt)
	})

	t.Run("OverlapConflict", func(t *testing.T) {
		repo := &fakeReservationRepo{overlap: true}
		uc := newUseCase(repo, &fakeOfficeRepo{office: testOffice()}, 1.0)

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrOverlap)
		assert.Nil(t, repo.created)
	})

	t.Run("OfficeNotFound", func(t *testing.T) {
		uc := newUseCase(&fakeReservationRepo{}, &fakeOfficeRepo{}, 1.0)

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrOfficeNotFound)
	})

	t.Run("DeletedOfficeRejected", func(t *testing.T) {
		office := testOffice()
		office.Deleted = true

		repo := &fakeReservationRepo{}
		uc := newUseCase(repo, &fakeOfficeRepo{office: office}, 1.0)

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrOfficeNotFound)
		assert.Nil(t, repo.created)
	})

	t.Run("StartDateInPast", func(t *testing.T) {
		uc := newUseCase(&fakeReservationRepo{}, &fakeOfficeRepo{office: testOffice()}, 1.0)

		req := validRequest()
		req.StartDate = now.AddDate(0, 0, -1)

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("TodayIsAllowed", func(t *testing.T) {
		uc := newUseCase(&fakeReservationRepo{}, &fakeOfficeRepo{office: testOffice()}, 1.0)

		req := validRequest()
		req.StartDate = now
		req.EndDate = now.AddDate(0, 0, 3)

		_, err := uc.Execute(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("StartNotBeforeEnd", func(t *testing.T) {
		uc := newUseCase(&fakeReservationRepo{}, &fakeOfficeRepo{office: testOffice()}, 1.0)

		req := validRequest()
		req.EndDate = req.StartDate

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("UnknownPaymentType", func(t *testing.T) {
		uc := newUseCase(&fakeReservationRepo{}, &fakeOfficeRepo{office: testOffice()}, 1.0)

		req := validRequest()
		req.PaymentType = "CRYPTO"

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		uc := newUseCase(&fakeReservationRepo{}, &fakeOfficeRepo{office: testOffice()}, 1.0)

		req := validRequest()
		req.UserID = ""

		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
