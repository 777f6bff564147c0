package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	"github.com/m04kA/SMC-StorageService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StorageService/pkg/txmanager"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование и привязывает к нему выделенный блок полок.
// Две вставки (bookings + booking_shelves) должны выполняться внутри
// транзакции вызывающего; репозиторий сам транзакцию не открывает.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"lessee_id",
			"space_id",
			"rack_id",
			"start_date",
			"end_date",
			"num_shelves",
			"total_price",
			"status",
		).
		Values(
			booking.LesseeID,
			booking.SpaceID,
			booking.RackID,
			booking.StartDate,
			booking.EndDate,
			booking.NumShelves,
			booking.TotalPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	// Фиксируем точный состав выделенного блока полок
	if len(booking.ShelfIDs) > 0 {
		insertShelves := psqlbuilder.Insert("booking_shelves").
			Columns("booking_id", "shelf_id")
		for _, shelfID := range booking.ShelfIDs {
			insertShelves = insertShelves.Values(booking.ID, shelfID)
		}

		query, args, err = insertShelves.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build shelf link query: %v", ErrBuildQuery, err)
		}

		if _, err = executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - link shelves: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе со списком его полок.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	shelfIDs, err := r.getShelfIDs(ctx, executor, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.ShelfIDs = shelfIDs

	return booking, nil
}

// GetByLessee получает бронирования пользователя, опционально по статусу
func (r *Repository) GetByLessee(ctx context.Context, lesseeID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := aggregatedSelect().
		Where(squirrel.Eq{"b.lessee_id": lesseeID}).
		OrderBy("b.start_date DESC, b.id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLessee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLessee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAggregatedBookings(rows)
}

// GetOverlapping получает удерживающие полки бронирования площадки,
// чей период пересекается с [start, end] (границы включительно).
// Используется движком аллокации для расчёта доступности по датам.
func (r *Repository) GetOverlapping(ctx context.Context, spaceID int64, start, end time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := aggregatedSelect().
		Where(squirrel.Eq{"b.space_id": spaceID}).
		Where(squirrel.Eq{"b.status": domain.HoldingStatuses}).
		Where(squirrel.LtOrEq{"b.start_date": end}).
		Where(squirrel.GtOrEq{"b.end_date": start}).
		OrderBy("b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAggregatedBookings(rows)
}

// ListHolding получает все бронирования в статусах BOOKED/ACTIVE.
// Используется пакетным обновлением статусов; внутри транзакции
// строки блокируются (FOR UPDATE).
func (r *Repository) ListHolding(ctx context.Context) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.HoldingStatuses}).
		OrderBy("id ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolding - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListHolding - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolding - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// bookingColumns список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"lessee_id",
	"space_id",
	"rack_id",
	"start_date",
	"end_date",
	"num_shelves",
	"total_price",
	"status",
	"created_at",
	"updated_at",
}

// aggregatedSelect строит SELECT бронирований с агрегированным списком
// полок (booking_shelves) одним запросом.
func aggregatedSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.lessee_id",
		"b.space_id",
		"b.rack_id",
		"b.start_date",
		"b.end_date",
		"b.num_shelves",
		"b.total_price",
		"b.status",
		"b.created_at",
		"b.updated_at",
		"COALESCE(ARRAY_AGG(bs.shelf_id ORDER BY bs.shelf_id) FILTER (WHERE bs.shelf_id IS NOT NULL), '{}')",
	).
		From("bookings b").
		LeftJoin("booking_shelves bs ON bs.booking_id = b.id").
		GroupBy("b.id")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку таблицы bookings без списка полок
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.LesseeID,
		&booking.SpaceID,
		&booking.RackID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.NumShelves,
		&booking.TotalPrice,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanAggregatedBookings сканирует результат aggregatedSelect
func scanAggregatedBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime
		var shelfIDs pq.Int64Array

		err := rows.Scan(
			&booking.ID,
			&booking.LesseeID,
			&booking.SpaceID,
			&booking.RackID,
			&booking.StartDate,
			&booking.EndDate,
			&booking.NumShelves,
			&booking.TotalPrice,
			&booking.Status,
			&createdAt,
			&updatedAt,
			&shelfIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAggregatedBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		booking.ShelfIDs = []int64(shelfIDs)

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAggregatedBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// getShelfIDs читает список полок бронирования в порядке позиций
func (r *Repository) getShelfIDs(ctx context.Context, executor DBExecutor, bookingID int64) ([]int64, error) {
	query, args, err := psqlbuilder.Select("bs.shelf_id").
		From("booking_shelves bs").
		Join("shelves s ON s.id = bs.shelf_id").
		Where(squirrel.Eq{"bs.booking_id": bookingID}).
		OrderBy("s.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getShelfIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getShelfIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shelfIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getShelfIDs - scan shelf_id: %v", ErrScanRow, err)
		}
		shelfIDs = append(shelfIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getShelfIDs - rows error: %v", ErrScanRow, err)
	}

	return shelfIDs, nil
}
