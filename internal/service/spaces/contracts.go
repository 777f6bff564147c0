package spaces

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	GetSpaceByID(ctx context.Context, id int64) (*domain.Space, error)
	ListSpaces(ctx context.Context, filter domain.SpaceFilter) ([]*domain.Space, error)
	ListRacks(ctx context.Context, spaceID int64) ([]domain.Rack, error)
	ListShelves(ctx context.Context, spaceID int64) ([]domain.Shelf, error)
	MaxAvailableShelves(ctx context.Context, spaceID int64) (int, error)
	UpdateSpaceStatus(ctx context.Context, id int64, status domain.SpaceStatus) error
	DeleteSpace(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
