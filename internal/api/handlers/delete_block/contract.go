package delete_block

import "context"

type AvailabilityService interface {
	DeleteBlock(ctx context.Context, consultantID, blockID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
