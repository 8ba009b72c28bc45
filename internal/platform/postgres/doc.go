// Package postgres implements the internal/store interfaces and the task
// store on PostgreSQL through database/sql and the pgx driver. It also owns
// the embedded schema migrations.
package postgres
