package auth

import (
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = time.Hour

// ClaimSet is the data carried inside a token. DisplayName and CreatedDate
// are copies taken at issuance and go stale if the user record changes.
type ClaimSet struct {
	SubjectID   string
	DisplayName string
	CreatedDate string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Claims is the JWT encoding of a ClaimSet.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
	Date string `json:"date,omitempty"`
}

// TokenCodec signs and verifies HS256 bearer tokens with a single
// process-wide secret. It is safe for concurrent use.
type TokenCodec struct {
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	validator *jwt.Validator
}

type TokenOption func(*TokenCodec)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) TokenOption {
	return func(c *TokenCodec) { c.ttl = ttl }
}

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret []byte, opts ...TokenOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, common.ErrMissingSecret
	}

	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    TokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.validator = jwt.NewValidator(
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	return c, nil
}

// Issue signs claims into a token valid for the codec's TTL from now.
func (c *TokenCodec) Issue(claims ClaimSet) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Name: claims.DisplayName,
		Date: claims.CreatedDate,
	})

	return token.SignedString(c.secret)
}

// Verify checks the signature and the expiry of token and returns its
// claims. Both checks always run; any failure is common.ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (ClaimSet, error) {
	claims := &Claims{}

	_, sigErr := jwt.ParseWithClaims(token, claims, c.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	expErr := c.validator.Validate(claims)

	if sigErr != nil || expErr != nil || claims.Subject == "" {
		return ClaimSet{}, common.ErrInvalidToken
	}

	return ClaimSet{
		SubjectID:   claims.Subject,
		DisplayName: claims.Name,
		CreatedDate: claims.Date,
		IssuedAt:    numericTime(claims.IssuedAt),
		ExpiresAt:   numericTime(claims.ExpiresAt),
	}, nil
}

func (c *TokenCodec) key(*jwt.Token) (any, error) {
	return c.secret, nil
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}
