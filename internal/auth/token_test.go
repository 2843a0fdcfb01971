package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

func testTTLs() TokenTTLs {
	return TokenTTLs{
		UserAccess:  30 * time.Minute,
		UserRefresh: 7 * 24 * time.Hour,
		Guest:       time.Hour,
		Admin:       30 * time.Minute,
	}
}

func TestIssueAndDecodeAllKinds(t *testing.T) {
	tm := NewTokenManager("test-secret", testTTLs())

	cases := []struct {
		kind    domain.TokenKind
		subject string
		role    string
	}{
		{domain.TokenKindUserAccess, "alice@example.com", ""},
		{domain.TokenKindUserRefresh, "alice@example.com", ""},
		{domain.TokenKindGuest, "opaque-guest-id", ""},
		{domain.TokenKindAdmin, "root@example.com", "superadmin"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			token, exp, err := tm.Issue(tc.kind, tc.subject, tc.role)
			require.NoError(t, err)
			assert.True(t, exp.After(time.Now()))

			claims, err := tm.Decode(token, tc.kind)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, claims.Kind)
			assert.Equal(t, tc.subject, claims.Subject)
			assert.Equal(t, tc.role, claims.Role)
			assert.Equal(t, tc.kind == domain.TokenKindAdmin, claims.IsAdmin)
		})
	}
}

func TestIssueUnknownKind(t *testing.T) {
	tm := NewTokenManager("test-secret", testTTLs())

	_, _, err := tm.Issue(domain.TokenKind("bogus"), "someone", "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", testTTLs())
	verifier := NewTokenManager("secret-b", testTTLs())

	token, _, err := issuer.Issue(domain.TokenKindUserAccess, "alice@example.com", "")
	require.NoError(t, err)

	_, err = verifier.Decode(token, domain.TokenKindUserAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeExpired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", testTTLs()).WithClock(func() time.Time { return issuedAt })

	token, exp, err := tm.Issue(domain.TokenKindUserAccess, "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(30*time.Minute), exp)

	// Still valid one minute before expiry.
	tm.WithClock(func() time.Time { return exp.Add(-time.Minute) })
	_, err = tm.Decode(token, domain.TokenKindUserAccess)
	require.NoError(t, err)

	tm.WithClock(func() time.Time { return exp.Add(time.Minute) })
	_, err = tm.Decode(token, domain.TokenKindUserAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeKindMismatch(t *testing.T) {
	tm := NewTokenManager("test-secret", testTTLs())

	token, _, err := tm.Issue(domain.TokenKindUserRefresh, "alice@example.com", "")
	require.NoError(t, err)

	_, err = tm.Decode(token, domain.TokenKindUserAccess)
	assert.ErrorIs(t, err, ErrKindMismatch)

	// Empty expected kind accepts any valid token.
	claims, err := tm.Decode(token, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindUserRefresh, claims.Kind)
}

func TestIssueGuestGeneratesSubjects(t *testing.T) {
	tm := NewTokenManager("test-secret", testTTLs())

	tokenA, guestA, _, err := tm.IssueGuest()
	require.NoError(t, err)
	tokenB, guestB, _, err := tm.IssueGuest()
	require.NoError(t, err)

	assert.NotEqual(t, guestA, guestB)
	assert.NotEqual(t, tokenA, tokenB)

	claims, err := tm.Decode(tokenA, domain.TokenKindGuest)
	require.NoError(t, err)
	assert.Equal(t, guestA, claims.Subject)
}
