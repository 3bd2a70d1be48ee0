package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/utils"
)

const testSecret = "middleware-test-secret"

func testApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/",
		JWTFromCookie(testSecret),
		AttachJWTLocals(),
	)
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": c.Locals("userId"), "role": c.Locals("role")})
	})
	protected.Get("/admin", RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, cookie string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: cookie})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestMissingCookieIsUnauthorized(t *testing.T) {
	app := testApp()
	if code := request(t, app, "/me", ""); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestGarbageTokenIsUnauthorized(t *testing.T) {
	app := testApp()
	if code := request(t, app, "/me", "not-a-jwt"); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestTokenSignedWithOtherSecretIsUnauthorized(t *testing.T) {
	app := testApp()
	token, err := utils.SignJWT("some-other-secret", "u1", "admin", 60)
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/admin", token); code != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestValidTokenPassesThrough(t *testing.T) {
	app := testApp()
	token, err := utils.SignJWT(testSecret, "u1", "customer", 60)
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/me", token); code != fiber.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}

func TestWrongRoleIsForbidden(t *testing.T) {
	app := testApp()
	token, err := utils.SignJWT(testSecret, "u1", "customer", 60)
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/admin", token); code != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
}

func TestMatchingRoleIsAllowed(t *testing.T) {
	app := testApp()
	token, err := utils.SignJWT(testSecret, "u1", "admin", 60)
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/admin", token); code != fiber.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}
