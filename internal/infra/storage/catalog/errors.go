package catalog

import "errors"

var (
	// ErrRoomNotFound is returned when no room matches the id
	ErrRoomNotFound = errors.New("catalog.repository: room not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
