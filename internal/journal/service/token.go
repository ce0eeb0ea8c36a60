package service

import (
	"time"

	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
)

// TokenService mints and checks the bearer tokens that authenticate
// every journal request.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string

	// TTL is the access token lifetime. Zero means
	// jwtx.DefaultAccessTokenTTL.
	TTL time.Duration

	// Now is the clock used for claim timestamps. Nil means time.Now.
	Now func() time.Time
}

// Issue signs a fresh access token for the given user.
func (s *TokenService) Issue(userID string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewUserClaims(userID, s.Issuer, ttl, s.now())
	return s.Signer.Sign(claims)
}

// Verify checks a raw token and returns the user id it carries.
func (s *TokenService) Verify(raw string) (string, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return "", err
	}
	if claims.UserID != "" {
		return claims.UserID, nil
	}
	return claims.Subject, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
