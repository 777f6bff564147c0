package get_installation_request

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

type InstallationService interface {
	GetByID(ctx context.Context, id int64) (*models.InstallationRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
