// Package db provides the PostgreSQL plumbing for authgate: a pgx connection
// pool with startup retries, goose migrations, transactions, and a health
// check closure for the readiness endpoint.
//
// Repositories depend on [Querier] rather than on *pgxpool.Pool so the same
// code runs against the shared pool or a request-scoped transaction:
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Errors are joined with the package sentinels ([ErrFailedToOpenDBConnection],
// [ErrApplyMigrations], ...) so callers can match them with errors.Is.
package db
