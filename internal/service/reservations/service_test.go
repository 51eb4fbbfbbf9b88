package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	reservationstorage "github.com/officely-app/Officely-BookingService/internal/infra/storage/reservation"
	"github.com/officely-app/Officely-BookingService/internal/service/reservations/models"
	"github.com/officely-app/Officely-BookingService/pkg/ptr"
)

type fakeRepo struct {
	reservations map[string]*domain.Reservation

	overlap    bool
	updateErr  error
	updated    *domain.Reservation
	newStatus  *domain.ReservationStatus
	paidAt     *time.Time
	lastUserID *string
	lastFilter domain.ReservationFilter
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	repo := &fakeRepo{reservations: make(map[string]*domain.Reservation)}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationstorage.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) GetByIDAndUser(_ context.Context, id string, userID string) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok || r.UserID != userID {
		return nil, reservationstorage.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) ExistsOverlapping(_ context.Context, _ string, _, _ time.Time, _ *string) (bool, error) {
	return f.overlap, nil
}

func (f *fakeRepo) GetWithFilter(_ context.Context, userID *string, filter domain.ReservationFilter, _ *domain.ReservationSortField, _ bool, _, _ int) ([]*domain.Reservation, error) {
	f.lastUserID = userID
	f.lastFilter = filter

	var result []*domain.Reservation
	for _, r := range f.reservations {
		if userID != nil && r.UserID != *userID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRepo) Update(_ context.Context, reservation *domain.Reservation) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.reservations[reservation.ID]; !ok {
		return reservationstorage.ErrReservationNotFound
	}
	f.updated = reservation
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationstorage.ErrReservationNotFound
	}
	f.newStatus = &status
	return nil
}

func (f *fakeRepo) MarkPaid(_ context.Context, id string, paidAt time.Time) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationstorage.ErrReservationNotFound
	}
	f.paidAt = &paidAt
	return nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct {
	serializableCalls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializableCalls++
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var today = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func pendingReservation() *domain.Reservation {
	r := &domain.Reservation{
		ID:              "res-1",
		OfficeID:        "office-1",
		UserID:          "user-1",
		StartDate:       today.AddDate(0, 0, 10),
		EndDate:         today.AddDate(0, 0, 15),
		BookedAt:        today,
		PricePerDay:     100,
		PriceMultiplier: 1.2,
		Status:          domain.StatusPending,
		PaymentType:     domain.PaymentCard,
	}
	r.Recalculate()
	return r
}

func newService(repo *fakeRepo, tx *fakeTxManager) *Service {
	return New(repo, tx, fixedTime{now: today.Add(9 * time.Hour)}, nopLogger{})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerSeesOwnReservation", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		resp, err := svc.GetByID(ctx, domain.Actor{UserID: "user-1"}, "res-1")
		require.NoError(t, err)
		assert.Equal(t, "res-1", resp.ID)
	})

	t.Run("ForeignReservationLooksMissing", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		_, err := svc.GetByID(ctx, domain.Actor{UserID: "user-2"}, "res-1")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("AdminSeesAnyReservation", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		resp, err := svc.GetByID(ctx, domain.Actor{UserID: "admin-1", Admin: true}, "res-1")
		require.NoError(t, err)
		assert.Equal(t, "res-1", resp.ID)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("RegularUserScopedToOwnReservations", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		svc := newService(repo, &fakeTxManager{})

		_, err := svc.List(ctx, &models.ListReservationsRequest{Actor: domain.Actor{UserID: "user-1"}})
		require.NoError(t, err)
		require.NotNil(t, repo.lastUserID)
		assert.Equal(t, "user-1", *repo.lastUserID)
	})

	t.Run("AdminSeesAllUsers", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		svc := newService(repo, &fakeTxManager{})

		_, err := svc.List(ctx, &models.ListReservationsRequest{Actor: domain.Actor{UserID: "admin-1", Admin: true}})
		require.NoError(t, err)
		assert.Nil(t, repo.lastUserID)
	})

	t.Run("UnknownSortFieldRejected", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeTxManager{})

		_, err := svc.List(ctx, &models.ListReservationsRequest{
			Actor:  domain.Actor{UserID: "user-1"},
			SortBy: ptr.Ptr("bogus"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: "user-1"}

	t.Run("DateChangeRecomputesDerivedFields", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		tx := &fakeTxManager{}
		svc := newService(repo, tx)

		newStart := today.AddDate(0, 0, 20)
		newEnd := today.AddDate(0, 0, 24)

		resp, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:     actor,
			StartDate: &newStart,
			EndDate:   &newEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(4), resp.DurationDays)
		assert.Equal(t, 480.0, resp.TotalPrice) // 4 * 100 * 1.2
		// Множитель зафиксирован при создании и не пересчитывается
		assert.Equal(t, 1.2, resp.PriceMultiplier)
		assert.Equal(t, 1, tx.serializableCalls)
	})

	t.Run("CommentOnlyUpdateSkipsOverlapCheck", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		tx := &fakeTxManager{}
		svc := newService(repo, tx)

		resp, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:    actor,
			Comments: ptr.Ptr("новый комментарий"),
		})
		require.NoError(t, err)
		assert.Equal(t, "новый комментарий", resp.Comments)
		assert.Equal(t, 0, tx.serializableCalls)
	})

	t.Run("OverlapRejected", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		repo.overlap = true
		svc := newService(repo, &fakeTxManager{})

		newStart := today.AddDate(0, 0, 20)
		newEnd := today.AddDate(0, 0, 24)

		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:     actor,
			StartDate: &newStart,
			EndDate:   &newEnd,
		})
		assert.ErrorIs(t, err, ErrOverlap)
	})

	t.Run("NonPendingRejectedForOwner", func(t *testing.T) {
		r := pendingReservation()
		r.Status = domain.StatusOngoing
		svc := newService(newFakeRepo(r), &fakeTxManager{})

		newEnd := today.AddDate(0, 0, 20)
		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:   actor,
			EndDate: &newEnd,
		})
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("AdminEditsAnyStatus", func(t *testing.T) {
		r := pendingReservation()
		r.Status = domain.StatusOngoing
		svc := newService(newFakeRepo(r), &fakeTxManager{})

		newEnd := today.AddDate(0, 0, 20)
		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:   domain.Actor{UserID: "admin-1", Admin: true},
			EndDate: &newEnd,
		})
		assert.NoError(t, err)
	})

	t.Run("PastDatesRejected", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		pastStart := today.AddDate(0, 0, -5)
		pastEnd := today.AddDate(0, 0, 5)

		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:     actor,
			StartDate: &pastStart,
			EndDate:   &pastEnd,
		})
		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("StartMustBeBeforeEnd", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		sameDay := today.AddDate(0, 0, 20)
		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:     actor,
			StartDate: &sameDay,
			EndDate:   &sameDay,
		})
		assert.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("TooLongComments", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		long := make([]byte, domain.MaxCommentsLength+1)
		for i := range long {
			long[i] = 'a'
		}

		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:    actor,
			Comments: ptr.Ptr(string(long)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("RepositoryErrorKeepsCause", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		repo.updateErr = errors.New("pq: connection reset")
		svc := newService(repo, &fakeTxManager{})

		_, err := svc.Update(ctx, "res-1", &models.UpdateReservationRequest{
			Actor:    actor,
			Comments: ptr.Ptr("комментарий"),
		})
		require.ErrorIs(t, err, ErrInternal)
		assert.Contains(t, err.Error(), "pq: connection reset")
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: "user-1"}

	t.Run("Success", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		svc := newService(repo, &fakeTxManager{})

		require.NoError(t, svc.Cancel(ctx, actor, "res-1"))
		require.NotNil(t, repo.newStatus)
		assert.Equal(t, domain.StatusCancelled, *repo.newStatus)
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		r := pendingReservation()
		r.Status = domain.StatusCancelled
		svc := newService(newFakeRepo(r), &fakeTxManager{})

		err := svc.Cancel(ctx, actor, "res-1")
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := newService(newFakeRepo(), &fakeTxManager{})

		err := svc.Cancel(ctx, actor, "missing")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_Pay(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: "user-1"}

	t.Run("Success", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		svc := newService(repo, &fakeTxManager{})

		resp, err := svc.Pay(ctx, actor, "res-1")
		require.NoError(t, err)
		assert.True(t, resp.Paid)
		require.NotNil(t, repo.paidAt)
		assert.Equal(t, today, *repo.paidAt) // дата без времени суток
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		r := pendingReservation()
		r.Paid = true
		svc := newService(newFakeRepo(r), &fakeTxManager{})

		_, err := svc.Pay(ctx, actor, "res-1")
		assert.ErrorIs(t, err, ErrAlreadyPaid)
	})

	t.Run("CashPayment", func(t *testing.T) {
		r := pendingReservation()
		r.PaymentType = domain.PaymentCash
		svc := newService(newFakeRepo(r), &fakeTxManager{})

		_, err := svc.Pay(ctx, actor, "res-1")
		assert.ErrorIs(t, err, ErrCashPayment)
	})

	t.Run("NotPending", func(t *testing.T) {
		r := pendingReservation()
		r.Status = domain.StatusCompleted
		svc := newService(newFakeRepo(r), &fakeTxManager{})

		_, err := svc.Pay(ctx, actor, "res-1")
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("OnlyOwnerCanPay", func(t *testing.T) {
		svc := newService(newFakeRepo(pendingReservation()), &fakeTxManager{})

		_, err := svc.Pay(ctx, domain.Actor{UserID: "admin-1", Admin: true}, "res-1")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
