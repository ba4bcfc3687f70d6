package visitor

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Store defines persistence for visitor records. Each call is assumed atomic;
// no transactions spanning multiple calls are required.
type Store interface {
	// FindByID retrieves a record by identifier, ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// Save persists the record, creating it if necessary.
	Save(ctx context.Context, rec *Record) error

	// Decrement atomically consumes one unit of quota and returns the updated
	// record. Records with unlimited or already-exhausted quota are returned
	// unchanged. The decrement-and-check must happen at the storage layer so
	// concurrent requests for the same visitor cannot observe a lost update.
	Decrement(ctx context.Context, id uuid.UUID) (*Record, error)
}

// SessionStore is the minimal capability the pipeline needs from the
// surrounding framework's session: a string-valued mapping scoped to one
// browser session and persisted between requests by the framework.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// SessionProvider yields the session store for an in-flight request.
type SessionProvider func(r *http.Request) SessionStore
