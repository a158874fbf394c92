// Package migrations embeds goose migrations for the Postgres backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
