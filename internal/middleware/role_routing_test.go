package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/utils"
)

// marketplaceApp mirrors how the real binary registers its route groups:
// public routes first, then a shared JWT group, then per-route customer
// gates and prefixed professional/admin groups. The stub handlers only
// prove the request made it past the gates.
func marketplaceApp() *fiber.App {
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/categories", ok)

	protected := api.Group("/",
		JWTFromCookie(testSecret),
		AttachJWTLocals(),
	)
	protected.Get("/me", ok)

	protected.Post("/requests", RequireRoles("customer"), ok)
	protected.Get("/requests", RequireRoles("customer"), ok)
	protected.Post("/requests/:id/cancel", RequireRoles("customer"), ok)
	protected.Post("/reviews", RequireRoles("customer"), ok)

	pro := protected.Group("/professional", RequireRoles("professional"))
	pro.Get("/requests", ok)
	pro.Get("/requests/history", ok)
	protected.Post("/requests/:id/accept", RequireRoles("professional"), ok)
	protected.Post("/requests/:id/reject", RequireRoles("professional"), ok)
	protected.Post("/requests/:id/complete", RequireRoles("professional"), ok)

	admin := protected.Group("/admin", RequireRoles("admin"))
	admin.Get("/requests", ok)
	admin.Post("/exports/requests", ok)

	return app
}

func routeRequest(t *testing.T, app *fiber.App, method, path, role string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := utils.SignJWT(testSecret, "u1", role, 60)
		if err != nil {
			t.Fatal(err)
		}
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRoleGatesDoNotLeakAcrossGroups(t *testing.T) {
	app := marketplaceApp()

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"professional reads own queue", "GET", "/api/professional/requests", "professional", fiber.StatusOK},
		{"professional reads history", "GET", "/api/professional/requests/history", "professional", fiber.StatusOK},
		{"professional accepts a request", "POST", "/api/requests/123/accept", "professional", fiber.StatusOK},
		{"professional rejects a request", "POST", "/api/requests/123/reject", "professional", fiber.StatusOK},
		{"professional completes a request", "POST", "/api/requests/123/complete", "professional", fiber.StatusOK},
		{"admin lists requests", "GET", "/api/admin/requests", "admin", fiber.StatusOK},
		{"admin triggers export", "POST", "/api/admin/exports/requests", "admin", fiber.StatusOK},
		{"customer creates a request", "POST", "/api/requests", "customer", fiber.StatusOK},
		{"customer lists own requests", "GET", "/api/requests", "customer", fiber.StatusOK},
		{"customer cancels", "POST", "/api/requests/123/cancel", "customer", fiber.StatusOK},
		{"any role reads /me", "GET", "/api/me", "professional", fiber.StatusOK},
		{"customer cannot accept", "POST", "/api/requests/123/accept", "customer", fiber.StatusForbidden},
		{"customer cannot enter professional group", "GET", "/api/professional/requests", "customer", fiber.StatusForbidden},
		{"professional cannot create requests", "POST", "/api/requests", "professional", fiber.StatusForbidden},
		{"professional cannot enter admin group", "GET", "/api/admin/requests", "professional", fiber.StatusForbidden},
		{"anonymous is unauthorized on protected", "GET", "/api/requests", "", fiber.StatusUnauthorized},
		{"anonymous still browses the catalog", "GET", "/api/categories", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routeRequest(t, app, tt.method, tt.path, tt.role); got != tt.want {
				t.Errorf("%s %s as %q = %d, want %d", tt.method, tt.path, tt.role, got, tt.want)
			}
		})
	}
}
