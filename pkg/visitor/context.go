package visitor

import "context"

// Identity is the request-scoped result of the pipeline. The zero value is
// the anonymous default: not a visitor, no record attached. It lives only for
// the duration of one request and is recomputed on every request.
type Identity struct {
	IsVisitor bool
	Visitor   *Record
}

type identityContextKey struct{}

// WithIdentity attaches an identity to the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ident)
}

// IdentityFromContext retrieves the identity resolved by the pipeline.
// Returns the anonymous default when the pipeline did not run.
func IdentityFromContext(ctx context.Context) Identity {
	ident, _ := ctx.Value(identityContextKey{}).(Identity)
	return ident
}

// FromContext retrieves the resolved visitor record, if any.
func FromContext(ctx context.Context) (*Record, bool) {
	ident := IdentityFromContext(ctx)
	if !ident.IsVisitor || ident.Visitor == nil {
		return nil, false
	}
	return ident.Visitor, true
}
