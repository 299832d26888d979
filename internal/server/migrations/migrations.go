// Package migrations embeds the goose SQL migrations for the dashboard
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
