package traffic

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

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы со статистикой посещений
// Одна строка на дату (UNIQUE-ограничение на date); строки никогда не
// удаляются физически, флаг deleted сохранен для совместимости со схемой
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики посещений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDateRange получает статистику за все даты диапазона [startDate, endDate]
func (r *Repository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.TrafficStatistic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"date",
		"visitor_count",
		"deleted",
		"created_at",
		"updated_at",
	).
		From("traffic_statistics").
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	statistics := make([]*domain.TrafficStatistic, 0)
	for rows.Next() {
		var stat domain.TrafficStatistic
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&stat.ID,
			&stat.Date,
			&stat.VisitorCount,
			&stat.Deleted,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDateRange - scan row: %v", ErrScanRow, err)
		}

		stat.CreatedAt = createdAt.Time
		stat.UpdatedAt = updatedAt.Time

		statistics = append(statistics, &stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - rows error: %v", ErrScanRow, err)
	}

	return statistics, nil
}

// SaveAll сохраняет статистику батчем с upsert по дате.
// Конкурентные инкременты могут терять единичные визиты - для счетчика
// трафика это допустимо и не влияет на корректность бронирований.
func (r *Repository) SaveAll(ctx context.Context, statistics []*domain.TrafficStatistic) error {
	if len(statistics) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("traffic_statistics").
		Columns("id", "date", "visitor_count", "deleted")

	for _, stat := range statistics {
		if stat.ID == "" {
			stat.ID = uuid.NewString()
		}
		insertBuilder = insertBuilder.Values(stat.ID, stat.Date, stat.VisitorCount, stat.Deleted)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (date) DO UPDATE SET visitor_count = EXCLUDED.visitor_count, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveAll - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveAll - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// AverageSince возвращает средний счетчик визитов по датам начиная с since
// nil означает отсутствие данных
func (r *Repository) AverageSince(ctx context.Context, since time.Time) (*float64, error) {
	return r.scanNullableFloat(ctx,
		psqlbuilder.Select("AVG(visitor_count)").
			From("traffic_statistics").
			Where(squirrel.GtOrEq{"date": since}),
		"AverageSince",
	)
}

// StddevSince возвращает стандартное отклонение счетчика визитов начиная с since
// nil означает отсутствие данных (STDDEV по одной строке тоже дает NULL)
func (r *Repository) StddevSince(ctx context.Context, since time.Time) (*float64, error) {
	return r.scanNullableFloat(ctx,
		psqlbuilder.Select("STDDEV(visitor_count)").
			From("traffic_statistics").
			Where(squirrel.GtOrEq{"date": since}),
		"StddevSince",
	)
}

// MaxBetween возвращает максимальный счетчик визитов в диапазоне [startDate, endDate]
// nil означает отсутствие данных в диапазоне
func (r *Repository) MaxBetween(ctx context.Context, startDate, endDate time.Time) (*int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MAX(visitor_count)").
		From("traffic_statistics").
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MaxBetween - build select query: %v", ErrBuildQuery, err)
	}

	var max sql.NullInt64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return nil, fmt.Errorf("%w: MaxBetween - scan max: %v", ErrScanRow, err)
	}

	if !max.Valid {
		return nil, nil
	}
	value := int(max.Int64)
	return &value, nil
}

// scanNullableFloat выполняет агрегатный запрос с NULL-able результатом
func (r *Repository) scanNullableFloat(ctx context.Context, b squirrel.SelectBuilder, op string) (*float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var value sql.NullFloat64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return nil, fmt.Errorf("%w: %s - scan value: %v", ErrScanRow, op, err)
	}

	if !value.Valid {
		return nil, nil
	}
	return &value.Float64, nil
}
