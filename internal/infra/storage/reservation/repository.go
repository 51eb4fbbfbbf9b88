package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	"github.com/officely-app/Officely-BookingService/pkg/dbmetrics"
	"github.com/officely-app/Officely-BookingService/pkg/psqlbuilder"
)

// reservationColumns колонки таблицы reservations в порядке сканирования
var reservationColumns = []string{
	"id",
	"office_id",
	"user_id",
	"start_date",
	"end_date",
	"booked_at",
	"price_per_day",
	"price_multiplier",
	"total_price",
	"duration_days",
	"status",
	"payment_type",
	"paid",
	"paid_at",
	"comments",
	"deleted",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание бронирования всегда должно выполняться в той же сериализуемой
// транзакции, что и проверка пересечений - иначе два конкурентных запроса
// могут оба пройти проверку и создать double-booking.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"office_id",
			"user_id",
			"start_date",
			"end_date",
			"booked_at",
			"price_per_day",
			"price_multiplier",
			"total_price",
			"duration_days",
			"status",
			"payment_type",
			"paid",
			"comments",
			"deleted",
		).
		Values(
			reservation.ID,
			reservation.OfficeID,
			reservation.UserID,
			reservation.StartDate,
			reservation.EndDate,
			reservation.BookedAt,
			reservation.PricePerDay,
			reservation.PriceMultiplier,
			reservation.TotalPrice,
			reservation.DurationDays,
			reservation.Status,
			reservation.PaymentType,
			reservation.Paid,
			reservation.Comments,
			reservation.Deleted,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanReservation(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByIDAndUser получает бронирование по ID, принадлежащее конкретному пользователю
func (r *Repository) GetByIDAndUser(ctx context.Context, id string, userID string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndUser - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanReservation(executor.QueryRowContext(ctx, query, args...), "GetByIDAndUser")
}

// ExistsOverlapping проверяет наличие пересекающегося активного бронирования офиса.
// Пересечение inclusive с обеих сторон: existing.start_date <= endDate AND
// existing.end_date >= startDate, то есть касание границ тоже считается конфликтом.
// excludeID позволяет исключить само обновляемое бронирование.
func (r *Repository) ExistsOverlapping(ctx context.Context, officeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.LtOrEq{"start_date": endDate}).
		Where(squirrel.GtOrEq{"end_date": startDate})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByOfficeOverlapping получает все бронирования офиса, пересекающиеся с
// диапазоном дат, одним запросом (включая отмененные - фильтрация по статусу
// выполняется вызывающей стороной)
func (r *Repository) GetByOfficeOverlapping(ctx context.Context, officeID string, startDate, endDate time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"office_id": officeID}).
		Where(squirrel.LtOrEq{"start_date": endDate}).
		Where(squirrel.GtOrEq{"end_date": startDate}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOfficeOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOfficeOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией, сортировкой и пагинацией
// userID != nil ограничивает выборку бронированиями конкретного пользователя
// (пользовательский список), nil - бронирования всех пользователей (админский список)
func (r *Repository) GetWithFilter(
	ctx context.Context,
	userID *string,
	filter domain.ReservationFilter,
	sortBy *domain.ReservationSortField,
	ascending bool,
	page, pageSize int,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).From("reservations")

	if userID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *userID})
	}

	selectBuilder = applyFilter(selectBuilder, filter)

	if sortBy != nil {
		column, ok := sortBy.Column()
		if !ok {
			return nil, fmt.Errorf("%w: GetWithFilter - unknown sort field %q", ErrBuildQuery, *sortBy)
		}
		direction := "DESC"
		if ascending {
			direction = "ASC"
		}
		selectBuilder = selectBuilder.OrderBy(column + " " + direction)
	} else {
		selectBuilder = selectBuilder.OrderBy("booked_at DESC, start_date DESC")
	}

	// page нумеруется с единицы
	selectBuilder = selectBuilder.
		Offset(uint64(page-1) * uint64(pageSize)).
		Limit(uint64(pageSize))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Update обновляет даты, производные поля и комментарий бронирования
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("start_date", reservation.StartDate).
		Set("end_date", reservation.EndDate).
		Set("duration_days", reservation.DurationDays).
		Set("total_price", reservation.TotalPrice).
		Set("comments", reservation.Comments).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// MarkPaid помечает бронирование оплаченным с датой оплаты
func (r *Repository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("paid", true).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkPaid")
}

// applyFilter добавляет условия фильтра к запросу
func applyFilter(b squirrel.SelectBuilder, filter domain.ReservationFilter) squirrel.SelectBuilder {
	if filter.Paid != nil {
		b = b.Where(squirrel.Eq{"paid": *filter.Paid})
	}
	if filter.PriceTotalMin != nil {
		b = b.Where(squirrel.GtOrEq{"total_price": *filter.PriceTotalMin})
	}
	if filter.PriceTotalMax != nil {
		b = b.Where(squirrel.LtOrEq{"total_price": *filter.PriceTotalMax})
	}
	if filter.PricePerDayMin != nil {
		b = b.Where(squirrel.GtOrEq{"price_per_day": *filter.PricePerDayMin})
	}
	if filter.PricePerDayMax != nil {
		b = b.Where(squirrel.LtOrEq{"price_per_day": *filter.PricePerDayMax})
	}
	if filter.PaymentType != nil {
		b = b.Where(squirrel.Eq{"payment_type": *filter.PaymentType})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.BookedAtFrom != nil {
		b = b.Where(squirrel.GtOrEq{"booked_at": *filter.BookedAtFrom})
	}
	if filter.BookedAtTo != nil {
		b = b.Where(squirrel.LtOrEq{"booked_at": *filter.BookedAtTo})
	}
	if filter.StartDateFrom != nil {
		b = b.Where(squirrel.GtOrEq{"start_date": *filter.StartDateFrom})
	}
	if filter.StartDateTo != nil {
		b = b.Where(squirrel.LtOrEq{"start_date": *filter.StartDateTo})
	}
	if filter.EndDateFrom != nil {
		b = b.Where(squirrel.GtOrEq{"end_date": *filter.EndDateFrom})
	}
	if filter.EndDateTo != nil {
		b = b.Where(squirrel.LtOrEq{"end_date": *filter.EndDateTo})
	}
	return b
}

// execExpectingRow выполняет update и проверяет, что ровно одна строка затронута
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в модель бронирования
func (r *Repository) scanReservation(row rowScanner, op string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var paidAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.OfficeID,
		&reservation.UserID,
		&reservation.StartDate,
		&reservation.EndDate,
		&reservation.BookedAt,
		&reservation.PricePerDay,
		&reservation.PriceMultiplier,
		&reservation.TotalPrice,
		&reservation.DurationDays,
		&reservation.Status,
		&reservation.PaymentType,
		&reservation.Paid,
		&paidAt,
		&reservation.Comments,
		&reservation.Deleted,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	if paidAt.Valid {
		reservation.PaidAt = &paidAt.Time
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := r.scanReservation(rows, "scanReservations")
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
