package get_space_layout

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
)

type SpaceService interface {
	GetLayout(ctx context.Context, spaceID int64) (*models.SpaceLayoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
