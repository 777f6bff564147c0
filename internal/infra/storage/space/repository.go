package space

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	"github.com/m04kA/SMC-StorageService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StorageService/pkg/txmanager"
)

// Repository репозиторий для работы с иерархией площадка -> стеллаж -> полка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateSpace создает площадку
func (r *Repository) CreateSpace(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("spaces").
		Columns(
			"renter_id",
			"area",
			"environment_conditions",
			"status",
			"price_per_day",
			"description",
		).
		Values(
			space.RenterID,
			space.Area,
			space.EnvironmentConditions,
			space.Status,
			space.PricePerDay,
			space.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpace - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&space.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpace - execute insert: %v", ErrExecQuery, err)
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return space, nil
}

// CreateRack создает стеллаж на заданной позиции внутри площадки
func (r *Repository) CreateRack(ctx context.Context, rack *domain.Rack) (*domain.Rack, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("racks").
		Columns("space_id", "position").
		Values(rack.SpaceID, rack.Position).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRack - build insert query: %v", ErrBuildQuery, err)
	}

	if err = executor.QueryRowContext(ctx, query, args...).Scan(&rack.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateRack - execute insert: %v", ErrExecQuery, err)
	}

	return rack, nil
}

// CreateShelves создает count свободных полок стеллажа с позициями 0..count-1
func (r *Repository) CreateShelves(ctx context.Context, rackID int64, count int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("shelves").
		Columns("rack_id", "position", "is_occupied")
	for position := 0; position < count; position++ {
		insertBuilder = insertBuilder.Values(rackID, position, false)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateShelves - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateShelves - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSpaceByID получает площадку по ID
func (r *Repository) GetSpaceByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From("spaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpaceByID - build select query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpaceByID - scan space: %v", ErrScanRow, err)
	}

	return space, nil
}

// ListSpaces получает площадки с фильтрацией по владельцу, статусу и району
func (r *Repository) ListSpaces(ctx context.Context, filter domain.SpaceFilter) ([]*domain.Space, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(spaceColumns...).
		From("spaces").
		OrderBy("id ASC")

	if filter.RenterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"renter_id": *filter.RenterID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.AreaContains != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"area": "%" + *filter.AreaContains + "%"})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSpaces - scan row: %v", ErrScanRow, err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpaces - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}

// ListRacks получает стеллажи площадки в порядке позиций
func (r *Repository) ListRacks(ctx context.Context, spaceID int64) ([]domain.Rack, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "space_id", "position").
		From("racks").
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRacks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRacks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	racks := make([]domain.Rack, 0)
	for rows.Next() {
		var rack domain.Rack
		if err := rows.Scan(&rack.ID, &rack.SpaceID, &rack.Position); err != nil {
			return nil, fmt.Errorf("%w: ListRacks - scan row: %v", ErrScanRow, err)
		}
		racks = append(racks, rack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRacks - rows error: %v", ErrScanRow, err)
	}

	return racks, nil
}

// ListShelves получает все полки площадки, упорядоченные по позиции
// стеллажа и позиции полки. Внутри транзакции строки полок блокируются
// (FOR UPDATE OF s) на время select-then-mark последовательности.
func (r *Repository) ListShelves(ctx context.Context, spaceID int64) ([]domain.Shelf, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.rack_id",
		"s.position",
		"s.is_occupied",
		"s.active_booking_id",
	).
		From("shelves s").
		Join("racks r ON r.id = s.rack_id").
		Where(squirrel.Eq{"r.space_id": spaceID}).
		OrderBy("r.position ASC, s.position ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListShelves - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListShelves - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shelves := make([]domain.Shelf, 0)
	for rows.Next() {
		var shelf domain.Shelf
		var activeBookingID sql.NullInt64
		if err := rows.Scan(&shelf.ID, &shelf.RackID, &shelf.Position, &shelf.IsOccupied, &activeBookingID); err != nil {
			return nil, fmt.Errorf("%w: ListShelves - scan row: %v", ErrScanRow, err)
		}
		if activeBookingID.Valid {
			shelf.ActiveBookingID = &activeBookingID.Int64
		}
		shelves = append(shelves, shelf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListShelves - rows error: %v", ErrScanRow, err)
	}

	return shelves, nil
}

// OccupyShelves помечает блок полок занятым и привязывает его к
// бронированию. Ссылка active_booking_id не перетирается, если полку
// уже удерживает другое бронирование на непересекающийся период.
func (r *Repository) OccupyShelves(ctx context.Context, bookingID int64, shelfIDs []int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shelves").
		Set("is_occupied", true).
		Set("active_booking_id", squirrel.Expr("COALESCE(active_booking_id, ?)", bookingID)).
		Where(squirrel.Eq{"id": shelfIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: OccupyShelves - build update query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: OccupyShelves - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ReleaseShelves освобождает полки бронирования. Если полку удерживает
// другое бронирование в статусе BOOKED/ACTIVE, ссылка перекидывается на
// него и полка остается занятой; иначе полка освобождается. Так
// сохраняется инвариант "полка занята <=> её держит BOOKED/ACTIVE
// бронирование" при непересекающихся по датам бронированиях одной полки.
func (r *Repository) ReleaseShelves(ctx context.Context, bookingID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	nextHolder := `(
		SELECT bs.booking_id
		FROM booking_shelves bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE bs.shelf_id = shelves.id
		  AND b.status IN ('BOOKED', 'ACTIVE')
		  AND b.id <> ?
		ORDER BY b.start_date ASC, b.id ASC
		LIMIT 1
	)`

	query, args, err := psqlbuilder.Update("shelves").
		Set("active_booking_id", squirrel.Expr(nextHolder, bookingID)).
		Set("is_occupied", squirrel.Expr(`EXISTS (
			SELECT 1
			FROM booking_shelves bs
			JOIN bookings b ON b.id = bs.booking_id
			WHERE bs.shelf_id = shelves.id
			  AND b.status IN ('BOOKED', 'ACTIVE')
			  AND b.id <> ?
		)`, bookingID)).
		Where(squirrel.Eq{"active_booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseShelves - build update query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseShelves - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// MaxAvailableShelves возвращает максимальное по стеллажам площадки
// число свободных полок. Используется поиском для аннотации выдачи.
func (r *Repository) MaxAvailableShelves(ctx context.Context, spaceID int64) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	perRack := psqlbuilder.Select("COUNT(*) FILTER (WHERE NOT s.is_occupied) AS available").
		From("racks r").
		LeftJoin("shelves s ON s.rack_id = r.id").
		Where(squirrel.Eq{"r.space_id": spaceID}).
		GroupBy("r.id")

	query, args, err := psqlbuilder.Select("COALESCE(MAX(available), 0)").
		FromSelect(perRack, "rack_counts").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MaxAvailableShelves - build select query: %v", ErrBuildQuery, err)
	}

	var max int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: MaxAvailableShelves - scan count: %v", ErrScanRow, err)
	}

	return max, nil
}

// UpdateSpaceStatus обновляет статус площадки
func (r *Repository) UpdateSpaceStatus(ctx context.Context, id int64, status domain.SpaceStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("spaces").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSpaceStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSpaceStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSpaceStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

// DeleteSpace удаляет площадку; стеллажи и полки удаляются каскадно
func (r *Repository) DeleteSpace(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("spaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSpace - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSpace - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSpace - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

// spaceColumns список колонок таблицы spaces
var spaceColumns = []string{
	"id",
	"renter_id",
	"area",
	"environment_conditions",
	"status",
	"price_per_day",
	"description",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSpace сканирует строку таблицы spaces
func scanSpace(row rowScanner) (*domain.Space, error) {
	var space domain.Space
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&space.ID,
		&space.RenterID,
		&space.Area,
		&space.EnvironmentConditions,
		&space.Status,
		&space.PricePerDay,
		&space.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time

	return &space, nil
}
