package find_tables

import (
	"context"

	allocateTables "github.com/castlepub/reservation-system-sub000/internal/usecase/allocate_tables"
)

type AllocateTablesUseCase interface {
	Execute(ctx context.Context, req *allocateTables.Request) (*allocateTables.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
