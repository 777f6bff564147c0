package refresh_bookings

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/bookings/models"
)

type BookingService interface {
	RefreshStatuses(ctx context.Context) (*models.RefreshResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
