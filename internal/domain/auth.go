package domain

// TokenKind differentiates the token variants the API issues.
type TokenKind string

const (
	TokenKindGuest       TokenKind = "guest"
	TokenKindUserAccess  TokenKind = "user_access"
	TokenKindUserRefresh TokenKind = "user_refresh"
	TokenKindAdmin       TokenKind = "admin"
)

// Valid reports whether the kind is one the service issues.
func (k TokenKind) Valid() bool {
	switch k {
	case TokenKindGuest, TokenKindUserAccess, TokenKindUserRefresh, TokenKindAdmin:
		return true
	}
	return false
}
