package search_spaces

import (
	"context"

	"github.com/m04kA/SMC-StorageService/internal/service/spaces/models"
)

type SpaceService interface {
	Search(ctx context.Context, req *models.SearchSpacesRequest) (*models.SearchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
