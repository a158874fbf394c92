// Package migrations embeds goose migrations for the SQLite backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
