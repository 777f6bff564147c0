package create_installation_request

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

type InstallationService interface {
	Create(ctx context.Context, req *models.CreateRequestRequest) (*models.InstallationRequestResponse, error)
	ListByRenter(ctx context.Context, renterID *int64) (*models.InstallationRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
