package api

import (
	"context"

	"github.com/rpupo63/portfolio-backend/auth"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity adds the verified token identity to the context
func ctxWithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity retrieves the identity placed by authenticate
func ctxGetIdentity(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}
