// Package migrations embeds SQL migration files for goose.
//
// Migration files follow the naming convention: YYYYMMDDHHMMSS_description.sql
// They are applied in order the first time a Postgres storage target is opened.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
