// Package migrations embeds the goose SQL migrations for the schema.
package migrations

import "embed"

// FS holds the SQL migration files applied at startup via goose.
//
//go:embed *.sql
var FS embed.FS
