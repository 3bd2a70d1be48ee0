package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/lifecycle"
)

func TestLifecycleFailStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", lifecycle.ErrNotFound, fiber.StatusNotFound},
		{"forbidden", lifecycle.ErrForbidden, fiber.StatusForbidden},
		{"category mismatch", lifecycle.ErrCategoryMismatch, fiber.StatusBadRequest},
		{"invalid transition", lifecycle.ErrInvalidTransition, fiber.StatusBadRequest},
		{"lost race", lifecycle.ErrConflict, fiber.StatusBadRequest},
		{"unexpected", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return lifecycleFail(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestFieldErrorsAccumulate(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "Email is required")
	errs.Add("email", "Invalid email format")
	errs.Add("name", "Name is required")

	if len(errs["email"]) != 2 {
		t.Errorf("email errors = %d, want 2", len(errs["email"]))
	}
	if len(errs["name"]) != 1 {
		t.Errorf("name errors = %d, want 1", len(errs["name"]))
	}
}
