// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package (orders, tasks and
// todos). It also owns the relational adapter: connection lifecycle, database
// bootstrap and the embedded goose migrations.
package postgres
