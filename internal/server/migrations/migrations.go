// Package migrations embeds the PostgreSQL schema of the document store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
