package complete_installation

import (
	"context"

	completeInstallationUC "github.com/m04kA/SMC-StorageService/internal/usecase/complete_installation"
)

type CompleteInstallationUseCase interface {
	Execute(ctx context.Context, req *completeInstallationUC.Request) (*completeInstallationUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
