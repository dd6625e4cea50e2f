// Package sqliteexternal provides optional external SQLite drivers.
//
// This package is part of the main github.com/FocuswithJustin/gedvault module
// and provides the CGO-based SQLite driver used by the SQLite export when
// built with the cgo_sqlite tag.
//
// # CGO SQLite Driver
//
// To use the CGO driver (github.com/mattn/go-sqlite3):
//
//	import _ "github.com/FocuswithJustin/gedvault/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// # Default Pure Go Driver
//
// By default, gedvault uses the pure Go modernc.org/sqlite driver, which
// requires no CGO. See github.com/FocuswithJustin/gedvault/core/sqlite.
//
// Use the default driver when cross-compiling or shipping a single static
// binary.
package sqliteexternal
