// Package migrations embeds the goose migrations for the SQL store backends.
// Each dialect has its own directory inside FS.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Directories inside FS per goose dialect.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
