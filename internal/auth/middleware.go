package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/repository"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Gate turns bearer tokens into resolved principals and exposes the fiber
// middleware protected routes hang off.
type Gate struct {
	tokens *TokenManager
	users  repository.UserRepository
	admins repository.AdminRepository
}

// NewGate constructs the authorization gate.
func NewGate(tokens *TokenManager, users repository.UserRepository, admins repository.AdminRepository) *Gate {
	return &Gate{tokens: tokens, users: users, admins: admins}
}

// Resolve validates the token and reconstructs the principal it names.
// Every failure mode (missing token, bad signature, expiry, missing claims,
// unknown type, dangling subject) comes back as an unauthorized error;
// storage failures other than a missing row propagate as internal errors.
func (g *Gate) Resolve(ctx context.Context, tokenStr string) (*Principal, error) {
	if tokenStr == "" {
		return nil, apperrors.NewUnauthorized("missing token")
	}

	claims, err := g.tokens.Decode(tokenStr, "")
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}
	if claims.Subject == "" || claims.Kind == "" {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	switch claims.Kind {
	case domain.TokenKindGuest:
		// Guest identity is ephemeral; no storage lookup.
		return &Principal{Kind: PrincipalGuest, GuestID: claims.Subject}, nil

	case domain.TokenKindUserAccess, domain.TokenKindUserRefresh:
		user, err := g.users.GetByEmail(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewUnauthorized("user not found")
			}
			return nil, apperrors.MapError(err)
		}
		return &Principal{Kind: PrincipalUser, User: user, SubRole: claims.Kind}, nil

	case domain.TokenKindAdmin:
		admin, err := g.admins.GetByEmail(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewUnauthorized("admin not found")
			}
			return nil, apperrors.MapError(err)
		}
		role := claims.Role
		if role == "" {
			role = string(admin.Role)
		}
		return &Principal{Kind: PrincipalAdmin, Admin: admin, Role: role, IsAdmin: true}, nil

	default:
		return nil, apperrors.NewUnauthorized("unknown token type")
	}
}

// Handle enforces authentication for protected routes and stashes the
// resolved principal for downstream guards and handlers.
func (g *Gate) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	principal, err := g.Resolve(c.Context(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
