package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func date(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func reservationRows(r *domain.Reservation) *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns).AddRow(
		r.ID, r.OfficeID, r.UserID, r.StartDate, r.EndDate, r.BookedAt,
		r.PricePerDay, r.PriceMultiplier, r.TotalPrice, r.DurationDays,
		r.Status, r.PaymentType, r.Paid, nil, r.Comments, r.Deleted,
		time.Now(), time.Now(),
	)
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              "res-1",
		OfficeID:        "office-1",
		UserID:          "user-1",
		StartDate:       date(10),
		EndDate:         date(15),
		BookedAt:        date(1),
		PricePerDay:     100,
		PriceMultiplier: 1.5,
		TotalPrice:      750,
		DurationDays:    5,
		Status:          domain.StatusPending,
		PaymentType:     domain.PaymentCard,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("GeneratesIDWhenEmpty", func(t *testing.T) {
		r := testReservation()
		r.ID = ""

		mock.ExpectQuery("INSERT INTO reservations").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		created, err := repo.Create(ctx, r)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("KeepsProvidedID", func(t *testing.T) {
		r := testReservation()

		mock.ExpectQuery("INSERT INTO reservations").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		created, err := repo.Create(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "res-1", created.ID)
	})
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
			WithArgs("res-1").
			WillReturnRows(reservationRows(testReservation()))

		reservation, err := repo.GetByID(ctx, "res-1")
		require.NoError(t, err)
		assert.Equal(t, "res-1", reservation.ID)
		assert.Equal(t, domain.StatusPending, reservation.Status)
		assert.Nil(t, reservation.PaidAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_GetByIDAndUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("ForeignUserLooksMissing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE").
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		_, err := repo.GetByIDAndUser(ctx, "res-1", "user-2")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_ExistsOverlapping(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("OverlapFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
			WithArgs("office-1", string(domain.StatusCancelled), date(15), date(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsOverlapping(ctx, "office-1", date(10), date(15), nil)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("NoOverlap", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
			WithArgs("office-1", string(domain.StatusCancelled), date(15), date(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsOverlapping(ctx, "office-1", date(10), date(15), nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("ExcludesGivenReservation", func(t *testing.T) {
		excludeID := "res-1"

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM reservations").
			WithArgs("office-1", string(domain.StatusCancelled), date(15), date(10), excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsOverlapping(ctx, "office-1", date(10), date(15), &excludeID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "res-1", domain.StatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE reservations SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "missing", domain.StatusCancelled)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_MarkPaid(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE reservations SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkPaid(ctx, "res-1", date(3))
	assert.NoError(t, err)
}

func TestRepository_GetWithFilter(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	t.Run("UserScopeAndPaging", func(t *testing.T) {
		userID := "user-1"

		mock.ExpectQuery("SELECT (.+) FROM reservations WHERE user_id = \\$1").
			WithArgs(userID).
			WillReturnRows(reservationRows(testReservation()))

		reservations, err := repo.GetWithFilter(ctx, &userID, domain.ReservationFilter{}, nil, false, 1, 20)
		require.NoError(t, err)
		require.Len(t, reservations, 1)
		assert.Equal(t, "res-1", reservations[0].ID)
	})

	t.Run("EmptyResult", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations").
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		reservations, err := repo.GetWithFilter(ctx, nil, domain.ReservationFilter{}, nil, false, 1, 20)
		require.NoError(t, err)
		assert.Empty(t, reservations)
	})
}
