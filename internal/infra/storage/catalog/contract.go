package catalog

import (
	"github.com/castlepub/reservation-system-sub000/pkg/dbmetrics"
)

// Database interfaces are shared with dbmetrics so the repository works
// over a plain *sql.DB, an instrumented wrapper, or a transaction.
type DBExecutor = dbmetrics.DBExecutor
