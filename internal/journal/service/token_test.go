package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	secret := []byte("test-secret-test-secret-test-secret!")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, "wayfarer-journal")
	require.NoError(t, err)

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "wayfarer-journal",
	}
}

func TestTokenService_IssueVerify(t *testing.T) {
	tokens := newTestTokenService(t)

	raw, err := tokens.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	userID, err := tokens.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestTokenService_DefaultLifetime(t *testing.T) {
	tokens := newTestTokenService(t)

	// A token minted two lifetimes ago must no longer verify.
	tokens.Now = func() time.Time { return time.Now().Add(-2 * jwtx.DefaultAccessTokenTTL) }
	raw, err := tokens.Issue("user-123")
	require.NoError(t, err)

	_, err = tokens.Verifier.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	// A fresh token carries the 72 hour expiry.
	tokens.Now = nil
	raw, err = tokens.Issue("user-123")
	require.NoError(t, err)

	claims, err := tokens.Verifier.Verify(raw)
	require.NoError(t, err)
	require.WithinDuration(t,
		time.Now().Add(jwtx.DefaultAccessTokenTTL),
		claims.ExpiresAt.Time,
		time.Minute)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	tokens := newTestTokenService(t)

	raw, err := tokens.Issue("user-123")
	require.NoError(t, err)

	_, err = tokens.Verify(raw + "x")
	require.Error(t, err)
}
