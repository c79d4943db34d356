// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store is a thin mapping between one table and its domain
// entity; every statement touches a single row or a single table, matching
// the no-cross-entity-transaction rule the services are built on.
package postgres
