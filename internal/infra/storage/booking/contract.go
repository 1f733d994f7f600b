package booking

import (
	"github.com/voltspot/EVC-BookingService/pkg/dbmetrics"
)

// DBExecutor абстракция над *sql.DB / *sql.Tx (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor
