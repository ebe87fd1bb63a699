package migrations

import "embed"

// FS contains embedded SQLite migrations for identity storage.
//
//go:embed *.sql
var FS embed.FS
