package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long an issued identity token stays valid.
const DefaultTTL = time.Hour

// ErrSecretNotConfigured is returned by Issue when no signing secret was provided.
var ErrSecretNotConfigured = errors.New("CHATBOT_IDENTITY_SECRET not set")

// Identity is the user the chat widget is told about. Until real user sessions
// exist this is a fixed placeholder taken from config.
type Identity struct {
	UserID         string
	Email          string
	StripeAccounts []string
}

// PlaceholderIdentity is used when config does not override it.
var PlaceholderIdentity = Identity{
	UserID:         "example-user-id",
	Email:          "user@example.com",
	StripeAccounts: []string{"acct_123"},
}

// Claims is the JWT payload handed to the chat widget.
type Claims struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email"`
	StripeAccounts []string `json:"stripe_accounts"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 identity tokens.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	identity Identity
	now      func() time.Time
}

// NewIssuer returns an Issuer. An empty secret is accepted; Issue then fails with
// ErrSecretNotConfigured so only the token route degrades.
func NewIssuer(secret string, ttl time.Duration, identity Identity) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret:   []byte(secret),
		ttl:      ttl,
		identity: identity,
		now:      time.Now,
	}
}

// Configured reports whether a signing secret is present.
func (i *Issuer) Configured() bool {
	return len(i.secret) > 0
}

// Issue signs a token for the configured identity.
func (i *Issuer) Issue() (string, error) {
	if !i.Configured() {
		return "", ErrSecretNotConfigured
	}
	now := i.now()
	claims := Claims{
		UserID:         i.identity.UserID,
		Email:          i.identity.Email,
		StripeAccounts: i.identity.StripeAccounts,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign identity token: %w", err)
	}
	return signed, nil
}

// parse verifies a token signed with secret and returns its claims.
func parse(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}
	return claims, nil
}
