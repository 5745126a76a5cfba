package storefront

import (
	"context"

	"github.com/google/uuid"
)

var userCtxKey = &contextKey{"user"}
var requestIDCtxKey = &contextKey{"request_id"}

type contextKey struct {
	name string
}

// WithUser sets the User in the given context
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext finds the user from the context.
func UserFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok && raw != nil
}

// WithRequestID tags outgoing API calls made with ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, id)
}

// RequestIDFromContext returns the request id, if any
func RequestIDFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(requestIDCtxKey).(string)
	return raw, ok && raw != ""
}

// ensureRequestID reuses the caller's request id or mints a new one.
func ensureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
