package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
	"github.com/bodytraq/imctrack/pkg/jwtx"
)

// RotationThreshold is the remaining refresh-token lifetime below which a
// renewal rotates the refresh token as well. Fixed policy, not configurable:
// renewing close to expiry would otherwise leave the client stranded when
// the refresh token runs out, while rotating on every renewal would churn
// long-lived credentials for no gain.
const RotationThreshold = 20 * time.Minute

var (
	// ErrInvalidRefresh reports a refresh token that failed verification.
	ErrInvalidRefresh = errors.New("invalid refresh token")

	// ErrRefreshMissingExpiry reports a refresh token whose payload carries
	// no expiry claim. Kept distinct from ErrInvalidRefresh so callers can
	// tell a structurally broken token from an expired or forged one.
	ErrRefreshMissingExpiry = errors.New("refresh token has no expiry")
)

// TokenService issues token pairs and applies the renewal/rotation policy.
type TokenService struct {
	Codec *jwtx.Codec
}

// IssuePair mints a fresh access+refresh pair for email.
func (s *TokenService) IssuePair(email string) (domain.TokenPair, error) {
	access, err := s.Codec.Issue(email, jwtx.ClassAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Codec.Issue(email, jwtx.ClassRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Renew verifies a refresh token and issues a new access token. When the
// refresh token has less than RotationThreshold of life left, a new refresh
// token is issued alongside it; otherwise the returned pair carries only the
// access token.
func (s *TokenService) Renew(refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Codec.Verify(refreshToken, jwtx.ClassRefresh)
	if err != nil {
		if errors.Is(err, jwtx.ErrMissingExpiry) {
			return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrRefreshMissingExpiry, err)
		}
		return domain.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidRefresh, err)
	}

	access, err := s.Codec.Issue(claims.Email, jwtx.ClassAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	pair := domain.TokenPair{AccessToken: access}

	if time.Until(claims.ExpiresAt.Time) < RotationThreshold {
		refresh, err := s.Codec.Issue(claims.Email, jwtx.ClassRefresh)
		if err != nil {
			return domain.TokenPair{}, err
		}
		pair.RefreshToken = refresh
	}

	return pair, nil
}
