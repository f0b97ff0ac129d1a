// Package store persists stress run history.
//
// Each harness run is recorded as one row in the runs table plus one row per
// failed task in run_failures. The store exists so that regressions show up
// across invocations ("this scenario started failing yesterday"), not to
// share state between runs: the harness itself stays single-use.
//
// SQLite is used through database/sql with the mattn/go-sqlite3 driver, WAL
// mode, and a single writer connection.
package store
