package create_booking

import (
	"context"

	createBookingUC "github.com/m04kA/SMC-StorageService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBookingUC.Request) (*createBookingUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
