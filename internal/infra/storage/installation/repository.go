package installation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StorageService/internal/domain"
	"github.com/m04kA/SMC-StorageService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StorageService/pkg/txmanager"
)

// DBExecutor интерфейс для работы с БД; активная транзакция
// извлекается из контекста через txmanager.GetExecutor.
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий для работы с заявками на монтаж
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку на монтаж
func (r *Repository) Create(ctx context.Context, request *domain.InstallationRequest) (*domain.InstallationRequest, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("installation_requests").
		Columns(
			"renter_id",
			"area",
			"environment_conditions",
			"status",
			"num_racks",
			"num_shelves_per_rack",
			"price_per_day",
			"description",
		).
		Values(
			request.RenterID,
			request.Area,
			request.EnvironmentConditions,
			request.Status,
			request.NumRacks,
			request.NumShelvesPerRack,
			request.PricePerDay,
			request.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&request.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID получает заявку по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.InstallationRequest, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("installation_requests").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// ListByRenter получает заявки, опционально отфильтрованные по владельцу
func (r *Repository) ListByRenter(ctx context.Context, renterID *int64) ([]*domain.InstallationRequest, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("installation_requests").
		OrderBy("id ASC")

	if renterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"renter_id": *renterID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.InstallationRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRenter - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.InstallationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("installation_requests").
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
		return ErrRequestNotFound
	}

	return nil
}

// Delete удаляет заявку. Вызывается конверсией после того, как
// созданная из заявки площадка полностью сохранена.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("installation_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// requestColumns список колонок таблицы installation_requests
var requestColumns = []string{
	"id",
	"renter_id",
	"area",
	"environment_conditions",
	"status",
	"num_racks",
	"num_shelves_per_rack",
	"price_per_day",
	"description",
	"created_at",
	"updated_at",
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует строку таблицы installation_requests
func scanRequest(row rowScanner) (*domain.InstallationRequest, error) {
	var request domain.InstallationRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.RenterID,
		&request.Area,
		&request.EnvironmentConditions,
		&request.Status,
		&request.NumRacks,
		&request.NumShelvesPerRack,
		&request.PricePerDay,
		&request.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return &request, nil
}
