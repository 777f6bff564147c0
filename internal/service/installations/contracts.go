package installations

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// InstallationRepository интерфейс репозитория заявок на монтаж
type InstallationRepository interface {
	Create(ctx context.Context, request *domain.InstallationRequest) (*domain.InstallationRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.InstallationRequest, error)
	ListByRenter(ctx context.Context, renterID *int64) ([]*domain.InstallationRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InstallationStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
