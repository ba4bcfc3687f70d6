// Package visitor implements temporary, token-based guest access for Go web
// applications. A visitor is granted a signed, expiring URL token instead of
// an account; the token resolves to a stored Record with a finite visit quota.
//
// Access is enforced by a two-stage request pipeline:
//
//  1. The resolver inspects the request URL for a token parameter, verifies it
//     and loads the referenced Record. This stage is strictly read-only.
//  2. The reconciler meters quota. A fresh (token-originated) visit decrements
//     the record's remaining sessions through the Store and writes a compact
//     Snapshot into the caller's session so later requests in the same browser
//     session are honoured without replaying the token. Session-continuation
//     visits never decrement. Exhausted, deactivated or out-of-window records
//     are evicted from the session on sight.
//
// The two stages always run in that order as a single middleware; they cannot
// be registered independently.
//
//	┌─────────┐  ?vuid=…   ┌──────────┐ read-only ┌───────┐
//	│ Request │ ─────────► │ resolver │ ────────► │ Store │
//	└─────────┘            └──────────┘           └───────┘
//	                             │ Identity                ▲
//	                             ▼                         │ decrement
//	                       ┌────────────┐   snapshot  ┌────┴─────────┐
//	                       │ reconciler │ ◄─────────► │ SessionStore │
//	                       └────────────┘             └──────────────┘
//
// # Usage
//
//	import "github.com/dmitrymomot/guestpass/pkg/visitor"
//
//	cfg := visitor.DefaultConfig()
//	cfg.Secret = "process-wide-signing-secret"
//
//	store := visitor.NewMemoryStore()
//	pipe := visitor.New(cfg, store, sessionProvider)
//
//	mux.Handle("/", pipe.Middleware(appHandler))
//
//	func appHandler(w http.ResponseWriter, r *http.Request) {
//	    ident := visitor.IdentityFromContext(r.Context())
//	    if ident.IsVisitor {
//	        // ident.Visitor carries the resolved Record
//	    }
//	}
//
// Invitation links are minted with a Codec:
//
//	codec := visitor.NewCodec(cfg)
//	link, err := codec.Tokenise("https://app.example.com/report", rec)
//
// Every failure mode (bad token, unknown or unusable record, storage fault)
// degrades to an anonymous request. Nothing is ever surfaced to the caller as
// an error; storage faults are reported through the configured slog logger.
package visitor
