//go:build cgo_sqlite

package sqlite

import (
	sqliteexternal "github.com/FocuswithJustin/gedvault/contrib/sqlite-external"
)

const (
	driverName    = sqliteexternal.DriverName
	driverType    = sqliteexternal.DriverType
	driverPackage = sqliteexternal.DriverPackage
)
