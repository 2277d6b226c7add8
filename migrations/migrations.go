// Package migrations embeds the SQL schema files so deployed binaries do not
// depend on a migrations directory being present on disk.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
