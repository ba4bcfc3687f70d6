// Package visitorpg implements visitor.Store on PostgreSQL using pgx.
//
// Quota consumption is pushed down to the database: Decrement issues a single
// conditional UPDATE guarded by sessions_left > 0, so two concurrent visits
// for the same record can never observe a lost update. Schema migrations ship
// embedded and are applied with Migrate.
package visitorpg
