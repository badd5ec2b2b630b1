package httpx

import "context"

// Identity is the authenticated user attached to a request context by the
// authentication middleware. It lives for one request only.
type Identity struct {
	ID    string
	Email string
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the authenticated identity, if any. Handlers
// behind the optional authentication middleware must handle ok=false.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
