// Package visitorredis adapts a Redis hash to the visitor.SessionStore
// capability, for applications whose browser sessions live in Redis rather
// than in an in-process session layer.
//
// Each browser session maps to one hash key; the visitor snapshot is a field
// inside it. Redis faults degrade fail-closed: reads report "absent" and the
// fault is logged, so an unavailable Redis turns visitors into anonymous
// callers instead of failing requests.
//
//	provider := func(r *http.Request) visitor.SessionStore {
//	    return visitorredis.New(r.Context(), client, sessionID(r))
//	}
package visitorredis
