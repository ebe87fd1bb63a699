package migrations

import "embed"

// FS contains embedded SQLite migrations for contact request storage.
//
//go:embed *.sql
var FS embed.FS
