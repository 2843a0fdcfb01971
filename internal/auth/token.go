package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

// Decode failure modes. Callers that only need pass/fail can treat any
// non-nil error as an invalid token.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrKindMismatch = errors.New("token type mismatch")
	ErrUnknownKind  = errors.New("unknown token kind")
)

// TokenTTLs carries the per-kind lifetimes, fixed at startup.
type TokenTTLs struct {
	UserAccess  time.Duration
	UserRefresh time.Duration
	Guest       time.Duration
	Admin       time.Duration
}

// TokenManager mints and validates the signed tokens for all principal
// kinds. Tokens are stateless: validity is a function of signature and
// expiry only, there is no server-side session store or revocation list.
type TokenManager struct {
	secret []byte
	ttls   TokenTTLs
	now    func() time.Time
}

// NewTokenManager builds a manager with the given signing secret and TTLs.
func NewTokenManager(secret string, ttls TokenTTLs) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttls: ttls, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims is the JWT payload shared by all token kinds. The wire contract
// is three claims minimum: sub, type, exp. Role and is_admin are only set
// on admin tokens; consumers unaware of extra claims ignore them.
type Claims struct {
	Kind    domain.TokenKind `json:"type"`
	Role    string           `json:"role,omitempty"`
	IsAdmin bool             `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) ttl(kind domain.TokenKind) (time.Duration, error) {
	switch kind {
	case domain.TokenKindUserAccess:
		return tm.ttls.UserAccess, nil
	case domain.TokenKindUserRefresh:
		return tm.ttls.UserRefresh, nil
	case domain.TokenKindGuest:
		return tm.ttls.Guest, nil
	case domain.TokenKindAdmin:
		return tm.ttls.Admin, nil
	default:
		return 0, ErrUnknownKind
	}
}

// Issue builds and signs a token of the given kind for the subject.
// For admin tokens the role is carried as an extra claim.
func (tm *TokenManager) Issue(kind domain.TokenKind, subject, role string) (string, time.Time, error) {
	ttl, err := tm.ttl(kind)
	if err != nil {
		return "", time.Time{}, err
	}

	now := tm.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Kind: kind,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if kind == domain.TokenKindAdmin {
		claims.IsAdmin = true
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// IssueGuest mints a guest token with a freshly generated opaque subject.
// Guest identity exists only inside the token; no record is stored.
func (tm *TokenManager) IssueGuest() (token string, guestID string, exp time.Time, err error) {
	guestID = uuid.NewString()
	token, exp, err = tm.Issue(domain.TokenKindGuest, guestID, "")
	return token, guestID, exp, err
}

// Decode verifies signature and expiry and returns the claims. When
// expectedKind is non-empty, a token of any other kind is rejected.
func (tm *TokenManager) Decode(tokenStr string, expectedKind domain.TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return tm.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if expectedKind != "" && claims.Kind != expectedKind {
		return nil, ErrKindMismatch
	}
	return claims, nil
}
