package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetOverlapping(ctx context.Context, spaceID int64, start, end time.Time) ([]*domain.Booking, error)
}

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	GetSpaceByID(ctx context.Context, id int64) (*domain.Space, error)
	ListRacks(ctx context.Context, spaceID int64) ([]domain.Rack, error)
	ListShelves(ctx context.Context, spaceID int64) ([]domain.Shelf, error)
	OccupyShelves(ctx context.Context, bookingID int64, shelfIDs []int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
