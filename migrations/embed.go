// Package migrations ships the PostgreSQL schema as versioned golang-migrate files.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file of this directory
//
//go:embed *.sql
var FS embed.FS
