package visitor

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Pipeline runs the two visitor access stages in a fixed order: resolve the
// request token, then reconcile against session state. The ordering is
// enforced here rather than by middleware registration order.
type Pipeline struct {
	cfg      Config
	codec    *Codec
	store    Store
	sessions SessionProvider
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used to report storage faults. Faults are never
// surfaced to the caller; they degrade to an anonymous request.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClock injects the pipeline's time source. The same clock drives token
// expiry and record validity-window checks.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a visitor access pipeline. Store and session provider are
// required; misconfiguration panics to prevent a silently open gate.
func New(cfg Config, store Store, sessions SessionProvider, opts ...Option) *Pipeline {
	if store == nil {
		panic("visitor: store is required")
	}
	if sessions == nil {
		panic("visitor: session provider is required")
	}

	p := &Pipeline{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.codec = NewCodec(cfg, WithCodecClock(p.now))
	return p
}

// Codec returns the pipeline's token codec, for minting invitation URLs with
// the same secret, TTL and clock the pipeline verifies with.
func (p *Pipeline) Codec() *Codec {
	return p.codec
}

// Middleware resolves and reconciles the visitor identity for each request
// and attaches it to the request context before calling the next handler.
func (p *Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := p.resolveRequest(r)
		ident = p.reconcileSession(r, ident)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
	})
}

// resolveRequest is the first stage: examine the token parameter and load the
// referenced record. Strictly read-only; it never touches the session or
// mutates the record, so running it twice yields the same identity. Every
// failure mode is indistinguishable from "no token".
func (p *Pipeline) resolveRequest(r *http.Request) Identity {
	raw := r.URL.Query().Get(p.cfg.TokenParam)
	if raw == "" {
		return Identity{}
	}

	id, err := p.codec.Detokenise(raw)
	if err != nil {
		return Identity{}
	}

	rec, err := p.store.FindByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.ErrorContext(r.Context(), "visitor store lookup failed", "visitor_id", id, "error", err)
		}
		return Identity{}
	}

	if !rec.Usable(p.now()) {
		return Identity{}
	}

	return Identity{IsVisitor: true, Visitor: rec}
}

// reconcileSession is the second stage and the only place that mutates quota
// or session contents. A fresh token-resolved visitor takes priority over any
// session snapshot and consumes one unit of quota; a snapshot-continued visit
// consumes none.
func (p *Pipeline) reconcileSession(r *http.Request, ident Identity) Identity {
	sess := p.sessions(r)
	if sess == nil {
		p.log.ErrorContext(r.Context(), "no session store for request, denying visitor access")
		return Identity{}
	}

	now := p.now()

	if ident.IsVisitor && ident.Visitor != nil {
		rec := ident.Visitor
		if !rec.Usable(now) {
			sess.Delete(p.cfg.SessionKey)
			return Identity{}
		}

		updated, err := p.store.Decrement(r.Context(), rec.ID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				p.log.ErrorContext(r.Context(), "visitor quota decrement failed", "visitor_id", rec.ID, "error", err)
			}
			sess.Delete(p.cfg.SessionKey)
			return Identity{}
		}

		// The visit that was usable at decrement time keeps its identity for
		// the remainder of this request, even when it just spent the last
		// unit of quota. The snapshot it leaves behind is evicted by the
		// continuation path on the next request once the record is unusable.
		sess.Set(p.cfg.SessionKey, updated.Snapshot().Encode())
		return Identity{IsVisitor: true, Visitor: updated}
	}

	raw, ok := sess.Get(p.cfg.SessionKey)
	if !ok {
		return Identity{}
	}

	snap, err := DecodeSnapshot(raw)
	if err != nil {
		sess.Delete(p.cfg.SessionKey)
		return Identity{}
	}

	rec, err := p.store.FindByID(r.Context(), snap.ID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.ErrorContext(r.Context(), "visitor store lookup failed", "visitor_id", snap.ID, "error", err)
		}
		sess.Delete(p.cfg.SessionKey)
		return Identity{}
	}

	if !rec.Usable(now) {
		sess.Delete(p.cfg.SessionKey)
		return Identity{}
	}

	return Identity{IsVisitor: true, Visitor: rec}
}
