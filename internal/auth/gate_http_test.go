package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

func newGuardedApp(gate *Gate) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/browse", gate.Handle, ok)
	app.Get("/user-only", gate.Handle, RequireUser(), ok)
	app.Get("/edit", gate.Handle, RequireAccessUser(), ok)
	app.Get("/admin-only", gate.Handle, RequireAdmin(), ok)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestGateEndToEnd(t *testing.T) {
	alice := &domain.User{ID: 7, Email: "alice@example.com"}
	root := &domain.Admin{ID: 1, Email: "root@example.com", Role: domain.AdminRoleAdmin}
	gate, tm := newTestGate(
		&stubUserRepo{users: map[string]*domain.User{alice.Email: alice}},
		&stubAdminRepo{admins: map[string]*domain.Admin{root.Email: root}},
	)
	app := newGuardedApp(gate)

	guestToken, _, _, err := tm.IssueGuest()
	require.NoError(t, err)
	accessToken, _, err := tm.Issue(domain.TokenKindUserAccess, alice.Email, "")
	require.NoError(t, err)
	refreshToken, _, err := tm.Issue(domain.TokenKindUserRefresh, alice.Email, "")
	require.NoError(t, err)
	adminToken, _, err := tm.Issue(domain.TokenKindAdmin, root.Email, string(root.Role))
	require.NoError(t, err)

	// Missing or malformed credentials are unauthorized.
	assert.Equal(t, 401, doRequest(t, app, "/browse", ""))
	assert.Equal(t, 401, doRequest(t, app, "/user-only", "garbage"))

	// Any valid token can browse.
	assert.Equal(t, 200, doRequest(t, app, "/browse", guestToken))
	assert.Equal(t, 200, doRequest(t, app, "/browse", accessToken))
	assert.Equal(t, 200, doRequest(t, app, "/browse", adminToken))

	// A resolved principal of the wrong variant is forbidden, not
	// unauthorized.
	assert.Equal(t, 403, doRequest(t, app, "/user-only", guestToken))
	assert.Equal(t, 200, doRequest(t, app, "/user-only", accessToken))
	assert.Equal(t, 200, doRequest(t, app, "/user-only", refreshToken))
	assert.Equal(t, 403, doRequest(t, app, "/user-only", adminToken))

	// State-changing routes reject refresh credentials.
	assert.Equal(t, 200, doRequest(t, app, "/edit", accessToken))
	assert.Equal(t, 403, doRequest(t, app, "/edit", refreshToken))
	assert.Equal(t, 403, doRequest(t, app, "/edit", guestToken))

	assert.Equal(t, 200, doRequest(t, app, "/admin-only", adminToken))
	assert.Equal(t, 403, doRequest(t, app, "/admin-only", accessToken))
	assert.Equal(t, 403, doRequest(t, app, "/admin-only", guestToken))
}
