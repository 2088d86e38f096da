// Package pg provides PostgreSQL utilities built on pgx/v5: connection
// pooling with startup retry, a health probe, goose-based schema migrations,
// and error helpers for common SQLSTATE classes.
//
// The notification storage in pkg/notify uses the pool produced here; the
// bundled migrations directory carries the notifications table schema.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil { ... }
package pg
