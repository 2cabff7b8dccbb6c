package auth

import "context"

// Identity is the resolved authentication state of one request. The
// profile fields are set only when Authenticated is true.
type Identity struct {
	Authenticated bool
	SubjectID     string
	DisplayName   string
	CreatedDate   string
}

// Anonymous is the identity of a caller that presented no credentials.
func Anonymous() Identity {
	return Identity{}
}

// IdentityFromClaims builds the authenticated identity carried by a
// verified token.
func IdentityFromClaims(c ClaimSet) Identity {
	return Identity{
		Authenticated: true,
		SubjectID:     c.SubjectID,
		DisplayName:   c.DisplayName,
		CreatedDate:   c.CreatedDate,
	}
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity attached to ctx, or the
// anonymous identity if there is none.
func IdentityFromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok {
		return Anonymous()
	}
	return id
}
