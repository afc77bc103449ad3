// Package jwtx implements the signed-token codec used for API credentials.
//
// Tokens come in two classes, access and refresh, each signed with its own
// HS256 secret and lifetime. Keeping the secrets independent means a leaked
// token of one class can never be replayed as, or used to mint, the other.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Class selects which secret and lifetime a token is issued or verified with.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

// Default token lifetimes. Access tokens stay short-lived; refresh tokens
// last a day and are rotated near expiry by the token service.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens, expired
	// tokens and class mismatches.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrMissingEmail reports a structurally valid token whose payload
	// carries no email claim.
	ErrMissingEmail = errors.New("jwtx: token has no email claim")

	// ErrMissingExpiry reports a token whose payload carries no exp claim.
	ErrMissingExpiry = errors.New("jwtx: token has no expiry claim")

	errUnknownClass = errors.New("jwtx: unknown token class")
)

// Claims is the payload carried by both token classes.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// Codec signs and verifies tokens for both classes.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec builds a Codec. Both secrets are mandatory and must differ.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwtx: both token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("jwtx: access and refresh secrets must differ")
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// Issue signs a token of the given class for email, using the current time.
func (c *Codec) Issue(email string, class Class) (string, error) {
	return c.IssueAt(email, class, time.Now())
}

// IssueAt is Issue with an explicit clock, used by tests and by the token
// service when deciding rotation against a single consistent "now".
func (c *Codec) IssueAt(email string, class Class, now time.Time) (string, error) {
	secret, ttl, err := c.classConfig(class)
	if err != nil {
		return "", err
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: signing %s token: %w", class, err)
	}
	return signed, nil
}

// Verify validates signature and expiry against the secret for class and
// returns the decoded claims.
func (c *Codec) Verify(tokenString string, class Class) (Claims, error) {
	secret, _, err := c.classConfig(class)
	if err != nil {
		return Claims{}, err
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil {
		return Claims{}, ErrMissingExpiry
	}
	if claims.Email == "" {
		return Claims{}, ErrMissingEmail
	}
	return claims, nil
}

// TTL reports the configured lifetime for a token class.
func (c *Codec) TTL(class Class) time.Duration {
	switch class {
	case ClassRefresh:
		return c.refreshTTL
	default:
		return c.accessTTL
	}
}

func (c *Codec) classConfig(class Class) ([]byte, time.Duration, error) {
	switch class {
	case ClassAccess:
		return c.accessSecret, c.accessTTL, nil
	case ClassRefresh:
		return c.refreshSecret, c.refreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("%w: %q", errUnknownClass, class)
	}
}
