package office

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	"github.com/officely-app/Officely-BookingService/pkg/dbmetrics"
	"github.com/officely-app/Officely-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// officeColumns колонки таблицы offices в порядке сканирования
var officeColumns = []string{
	"id",
	"name",
	"metric_area",
	"floor",
	"room_number",
	"country",
	"city",
	"postal_code",
	"address",
	"longitude",
	"latitude",
	"price",
	"owner_id",
	"deleted",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения офисов
// CRUD офисов принадлежит админской части системы и сюда не входит -
// ядру бронирования нужны только чтение и поиск доступных офисов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория офисов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает офис по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Office, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(officeColumns...).
		From("offices").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var office domain.Office
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&office.ID,
		&office.Name,
		&office.MetricArea,
		&office.Floor,
		&office.RoomNumber,
		&office.Country,
		&office.City,
		&office.PostalCode,
		&office.Address,
		&office.Longitude,
		&office.Latitude,
		&office.Price,
		&office.OwnerID,
		&office.Deleted,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOfficeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan office: %v", ErrScanRow, err)
	}

	office.CreatedAt = createdAt.Time
	office.UpdatedAt = updatedAt.Time

	return &office, nil
}

// FindAvailable получает офисы, свободные на весь диапазон [startDate, endDate],
// с фильтрацией, сортировкой и пагинацией.
// Офис считается занятым, если существует неотмененное бронирование,
// пересекающееся с диапазоном (inclusive с обеих сторон).
func (r *Repository) FindAvailable(
	ctx context.Context,
	startDate, endDate time.Time,
	filter domain.OfficeFilter,
	sortBy *domain.OfficeSortField,
	ascending bool,
	page, pageSize int,
) ([]*domain.Office, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(officeColumns...).
		From("offices").
		Where(squirrel.Eq{"deleted": false}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM reservations r WHERE r.office_id = offices.id AND r.status != ? AND r.start_date <= ? AND r.end_date >= ?)",
			domain.StatusCancelled, endDate, startDate,
		))

	selectBuilder = applyFilter(selectBuilder, filter)

	if sortBy != nil {
		column, ok := sortBy.Column()
		if !ok {
			return nil, fmt.Errorf("%w: FindAvailable - unknown sort field %q", ErrBuildQuery, *sortBy)
		}
		direction := "DESC"
		if ascending {
			direction = "ASC"
		}
		selectBuilder = selectBuilder.OrderBy(column + " " + direction)
	} else {
		selectBuilder = selectBuilder.OrderBy("name ASC")
	}

	// page нумеруется с единицы
	selectBuilder = selectBuilder.
		Offset(uint64(page-1) * uint64(pageSize)).
		Limit(uint64(pageSize))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOffices(rows)
}

// applyFilter добавляет условия фильтра к запросу
func applyFilter(b squirrel.SelectBuilder, filter domain.OfficeFilter) squirrel.SelectBuilder {
	if filter.PricePerDayMin != nil {
		b = b.Where(squirrel.GtOrEq{"price": *filter.PricePerDayMin})
	}
	if filter.PricePerDayMax != nil {
		b = b.Where(squirrel.LtOrEq{"price": *filter.PricePerDayMax})
	}
	if filter.AreaMin != nil {
		b = b.Where(squirrel.GtOrEq{"metric_area": *filter.AreaMin})
	}
	if filter.AreaMax != nil {
		b = b.Where(squirrel.LtOrEq{"metric_area": *filter.AreaMax})
	}
	if filter.Country != nil {
		b = b.Where(squirrel.Eq{"country": *filter.Country})
	}
	if filter.City != nil {
		b = b.Where(squirrel.Eq{"city": *filter.City})
	}
	if filter.PostalCode != nil {
		b = b.Where(squirrel.Eq{"postal_code": *filter.PostalCode})
	}
	if filter.Address != nil {
		b = b.Where(squirrel.ILike{"address": "%" + *filter.Address + "%"})
	}
	return b
}

// scanOffices сканирует результаты запроса в слайс офисов
func (r *Repository) scanOffices(rows *sql.Rows) ([]*domain.Office, error) {
	offices := make([]*domain.Office, 0)

	for rows.Next() {
		var office domain.Office
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&office.ID,
			&office.Name,
			&office.MetricArea,
			&office.Floor,
			&office.RoomNumber,
			&office.Country,
			&office.City,
			&office.PostalCode,
			&office.Address,
			&office.Longitude,
			&office.Latitude,
			&office.Price,
			&office.OwnerID,
			&office.Deleted,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanOffices - scan row: %v", ErrScanRow, err)
		}

		office.CreatedAt = createdAt.Time
		office.UpdatedAt = updatedAt.Time

		offices = append(offices, &office)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOffices - rows error: %v", ErrScanRow, err)
	}

	return offices, nil
}
