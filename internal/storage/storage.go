// Package storage provides the persistence boundary for lodestar entities.
// Two backends implement the Provider interface over a shared column-identical
// schema: a local SQLite database and PostgreSQL.
package storage

var (
	_ Provider = (*SQLiteStore)(nil)
	_ Provider = (*PostgresStore)(nil)
)
