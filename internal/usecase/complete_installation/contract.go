package complete_installation

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// InstallationRepository интерфейс репозитория заявок на монтаж
type InstallationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InstallationRequest, error)
	Delete(ctx context.Context, id int64) error
}

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	CreateSpace(ctx context.Context, space *domain.Space) (*domain.Space, error)
	CreateRack(ctx context.Context, rack *domain.Rack) (*domain.Rack, error)
	CreateShelves(ctx context.Context, rackID int64, count int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
