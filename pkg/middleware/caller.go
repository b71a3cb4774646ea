package middleware

import (
	"context"
	"net/http"
	"strings"
)

// CallerHeader carries the identity of the caller. It is set by the
// authenticating proxy in front of the service and trusted as is.
const CallerHeader = "X-Caller-Id"

type callerKey struct{}

// CallerIdentity stores the caller identity from CallerHeader in the request context.
func CallerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(CallerHeader)); id != "" {
			r = r.WithContext(WithCaller(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// WithCaller returns a copy of ctx carrying the caller identity.
func WithCaller(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// Caller returns the caller identity stored by CallerIdentity.
func Caller(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(callerKey{}).(string)
	return id, ok && id != ""
}
