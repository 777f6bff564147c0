package review_installation_request

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/installations/models"
)

type InstallationService interface {
	Review(ctx context.Context, id int64, req *models.ReviewRequestRequest) (*models.InstallationRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
