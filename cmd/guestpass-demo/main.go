// Command guestpass-demo runs a minimal web application gated by the visitor
// pipeline. It issues invitation links and shows the identity the pipeline
// resolved for each request.
//
// With no environment set it runs fully in-process; set PG_CONN_URL and/or
// REDIS_URL to back visitor records with Postgres and session state with
// Redis.
//
//	VISITOR_TOKEN_SECRET=dev-secret go run ./cmd/guestpass-demo
//	curl -X POST 'localhost:8080/issue?email=fred@example.com&scope=reports&sessions=2'
//	curl -b cookies.txt -c cookies.txt '<the returned link>'
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/guestpass/pkg/config"
	"github.com/dmitrymomot/guestpass/pkg/logger"
	"github.com/dmitrymomot/guestpass/pkg/pg"
	"github.com/dmitrymomot/guestpass/pkg/redis"
	"github.com/dmitrymomot/guestpass/pkg/visitor"
	"github.com/dmitrymomot/guestpass/pkg/visitorpg"
	"github.com/dmitrymomot/guestpass/pkg/visitorredis"
)

type appConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	Visitor  visitor.Config
	Logger   logger.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(cfg.Logger, os.Stdout)
	logger.SetAsDefault(log)

	ctx := context.Background()
	store := buildStore(ctx, log)
	sessions := buildSessions(ctx, log)

	pipe := visitor.New(cfg.Visitor, store, sessions, visitor.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(ensureSessionCookie)
	r.Use(pipe.Middleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		ident := visitor.IdentityFromContext(r.Context())
		if !ident.IsVisitor {
			fmt.Fprintln(w, "hello, anonymous")
			return
		}
		fmt.Fprintf(w, "hello %s (scope %q, sessions left: %d)\n",
			ident.Visitor.Email, ident.Visitor.Scope, ident.Visitor.SessionsLeft)
	})
	r.Post("/issue", issueHandler(pipe, store))

	log.Info("listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// issueHandler mints a new visitor record and returns its invitation link.
// In a real application this sits behind admin authentication.
func issueHandler(pipe *visitor.Pipeline, store visitor.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions := 1
		if v := r.FormValue("sessions"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid sessions value", http.StatusBadRequest)
				return
			}
			sessions = n
		}

		rec := visitor.NewRecord(r.FormValue("email"), r.FormValue("scope"), sessions)
		if err := store.Save(r.Context(), rec); err != nil {
			http.Error(w, "failed to store visitor", http.StatusInternalServerError)
			return
		}

		target := r.FormValue("url")
		if target == "" {
			target = "/"
		}
		link, err := pipe.Codec().Tokenise(target, rec)
		if err != nil {
			http.Error(w, "failed to mint link", http.StatusInternalServerError)
			return
		}

		fmt.Fprintln(w, link)
	}
}

// buildStore picks the visitor store: Postgres when PG_CONN_URL is set, an
// in-memory store otherwise.
func buildStore(ctx context.Context, log *slog.Logger) visitor.Store {
	if os.Getenv("PG_CONN_URL") == "" {
		log.Info("using in-memory visitor store")
		return visitor.NewMemoryStore()
	}

	var cfg pg.Config
	config.MustLoad(&cfg)

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if err := visitorpg.Migrate(ctx, pool, log); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	log.Info("using postgres visitor store")
	return visitorpg.New(pool)
}

// buildSessions picks the session provider: Redis-backed hashes when
// REDIS_URL is set, per-session in-memory maps otherwise.
func buildSessions(ctx context.Context, log *slog.Logger) visitor.SessionProvider {
	if os.Getenv("REDIS_URL") == "" {
		log.Info("using in-memory sessions")
		reg := newSessionRegistry()
		return func(r *http.Request) visitor.SessionStore {
			return reg.session(sessionID(r))
		}
	}

	var cfg redis.Config
	config.MustLoad(&cfg)

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	log.Info("using redis sessions")
	return func(r *http.Request) visitor.SessionStore {
		return visitorredis.New(r.Context(), client, sessionID(r), visitorredis.WithLogger(log))
	}
}
