package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/lifecycle"
)

// fakeLifecycle records Create calls and returns a canned request.
type fakeLifecycle struct {
	createCalls   int
	createRemarks string
	createErr     error
}

func (f *fakeLifecycle) Create(customerID, serviceID uuid.UUID, remarks string) (*models.ServiceRequest, error) {
	f.createCalls++
	f.createRemarks = remarks
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.ServiceRequest{
		ID:         uuid.New(),
		CustomerID: customerID,
		ServiceID:  serviceID,
		Status:     models.RequestStatusPending,
		Remarks:    remarks,
	}, nil
}

func (f *fakeLifecycle) Cancel(uuid.UUID, uuid.UUID) (*models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeLifecycle) Accept(uuid.UUID, uuid.UUID) (*models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeLifecycle) Reject(uuid.UUID, uuid.UUID) (*models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeLifecycle) Complete(uuid.UUID, uuid.UUID) (*models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeLifecycle) QueueFor(*models.User) ([]models.ServiceRequest, error) { return nil, nil }
func (f *fakeLifecycle) HistoryFor(uuid.UUID) ([]models.ServiceRequest, error) { return nil, nil }
func (f *fakeLifecycle) ForCustomer(uuid.UUID) ([]models.ServiceRequest, error) {
	return nil, nil
}

func createRequestApp(fake *fakeLifecycle) *fiber.App {
	h := &RequestHandler{Lifecycle: fake}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", uuid.New().String())
		return c.Next()
	})
	app.Post("/requests", h.Create)
	return app
}

func TestCreateRequestStoresRemarksInOneWrite(t *testing.T) {
	fake := &fakeLifecycle{}
	app := createRequestApp(fake)

	body := `{"service_id":"` + uuid.New().String() + `","remarks":"  leaky faucet  "}`
	req := httptest.NewRequest("POST", "/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if fake.createCalls != 1 {
		t.Errorf("Create called %d times, want 1", fake.createCalls)
	}
	if fake.createRemarks != "leaky faucet" {
		t.Errorf("remarks passed to Create = %q, want trimmed %q", fake.createRemarks, "leaky faucet")
	}

	var payload struct {
		Data models.ServiceRequest `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.Remarks != "leaky faucet" {
		t.Errorf("response remarks = %q", payload.Data.Remarks)
	}
}

func TestCreateRequestUnknownService(t *testing.T) {
	fake := &fakeLifecycle{createErr: lifecycle.ErrNotFound}
	app := createRequestApp(fake)

	body := `{"service_id":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest("POST", "/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
