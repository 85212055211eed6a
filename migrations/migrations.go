// Package migrations embeds the SQL schema migrations so the server
// binary can bring a database up to date without shipping loose files.
package migrations

import "embed"

// FS holds the goose SQL migration files.
//
//go:embed *.sql
var FS embed.FS
