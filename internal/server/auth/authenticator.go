// Package auth implements password hashing, bearer token issuance and
// verification, the per-request authenticator and the authorization guard.
package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophcourses/internal/common"
)

// TokenVerifier is the part of TokenCodec the authenticator needs.
type TokenVerifier interface {
	Verify(token string) (ClaimSet, error)
}

// Authenticator resolves the Authorization header of a request into an
// Identity. It holds no per-request state.
type Authenticator struct {
	tokens TokenVerifier
}

func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Authenticate resolves header into an identity.
//
// A missing header is anonymous access and is not an error. A header that
// is present but carries no bearer token fails with
// common.ErrMalformedHeader, and a token that does not verify fails with
// common.ErrInvalidToken. On failure the returned identity is anonymous and
// the caller must stop the request.
func (a *Authenticator) Authenticate(header string, present bool) (Identity, error) {
	if !present {
		return Anonymous(), nil
	}

	token, err := BearerToken(header)
	if err != nil {
		return Anonymous(), err
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return Anonymous(), common.ErrInvalidToken
	}

	return IdentityFromClaims(claims), nil
}

// BearerToken extracts the token from a "Bearer <token>" header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrMalformedHeader
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", common.ErrMalformedHeader
	}
	return token, nil
}
