package model

import "context"

// Identity is the authenticated caller injected into request context
// by the authentication middleware.
type Identity struct {
	UserID   int64
	Username string
}

// ContextManager stores and retrieves the authenticated identity in a
// request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}
