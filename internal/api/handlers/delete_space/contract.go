package delete_space

import "context"

type SpaceService interface {
	Delete(ctx context.Context, spaceID int64, renterID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
