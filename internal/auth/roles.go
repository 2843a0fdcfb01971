package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

// Role guards. An absent principal is reported as unauthorized (401),
// a resolved principal of the wrong variant as forbidden (403).

// RequireGuest ensures the caller holds a guest session.
func RequireGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if !principal.IsGuest() {
			return apperrors.NewForbidden("guest access required")
		}
		return c.Next()
	}
}

// RequireUser ensures a registered user is authenticated. Both the access
// and refresh sub-roles are accepted.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if !principal.IsUser() {
			return apperrors.NewForbidden("user access required")
		}
		return c.Next()
	}
}

// RequireAccessUser ensures a user holding a short-lived access credential.
// Refresh tokens are rejected so long-lived credentials cannot drive
// state-changing operations.
func RequireAccessUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if !principal.IsAccessUser() {
			return apperrors.NewForbidden("access token required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller may perform admin operations: the admin
// variant, or any principal whose token carried is_admin even with the role
// claim absent.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if !principal.HasAdminAccess() {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
