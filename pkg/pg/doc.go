// Package pg provides PostgreSQL connectivity for guestpass deployments that
// persist visitor records in Postgres (see pkg/visitorpg).
//
// Connect establishes a pgxpool with retry and backoff so process startup
// survives transient database unavailability. Healthcheck wraps a pool ping
// for readiness endpoints.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := visitorpg.New(pool)
package pg
