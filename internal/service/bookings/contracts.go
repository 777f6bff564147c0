package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByLessee(ctx context.Context, lesseeID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListHolding(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SpaceRepository интерфейс репозитория площадок
type SpaceRepository interface {
	ReleaseShelves(ctx context.Context, bookingID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock источник текущего времени, подменяемый в тестах
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
