package auth

import "context"

// Principal is the authenticated caller. ID is the identity provider's
// subject (Firebase UID) and is the owner key for every stored record.
type Principal struct {
	ID    string
	Email string
}

type contextKey string

const principalKey contextKey = "principal"

// DevPrincipal is attached to every request when the identity provider is
// not configured and the deployment runs in development or test.
var DevPrincipal = Principal{ID: "dev-user-123", Email: "dev@example.com"}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.ID == "" {
		return Principal{}, false
	}
	return p, true
}
