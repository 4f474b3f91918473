package booking

import (
	"context"
	"database/sql"

	"github.com/castlepub/reservation-system-sub000/pkg/dbmetrics"
)

// Database interfaces are shared with dbmetrics so the repository works
// over a plain *sql.DB, an instrumented wrapper, or a transaction.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Satisfied by *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
