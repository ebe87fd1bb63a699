package migrations

import "embed"

// FS contains embedded SQLite migrations for shortlist storage.
//
//go:embed *.sql
var FS embed.FS
