// Package migrations embeds the SQL migration files for all supported
// database backends. Backend stores select their dialect subdirectory with
// fs.Sub.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
