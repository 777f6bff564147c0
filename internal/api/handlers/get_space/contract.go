package get_space

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
)

type SpaceService interface {
	GetByID(ctx context.Context, id int64) (*models.SpaceResponse, error)
	ListByRenter(ctx context.Context, renterID int64) (*models.SpaceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
