package lifecycle

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

func pendingRequest(customerID uuid.UUID) *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:         uuid.New(),
		CustomerID: customerID,
		ServiceID:  uuid.New(),
		Status:     models.RequestStatusPending,
	}
}

func TestCanDecide(t *testing.T) {
	claimed := uuid.New()

	tests := []struct {
		name         string
		status       models.RequestStatus
		professional *uuid.UUID
		categoryName string
		serviceType  string
		want         error
	}{
		{"pending matching type", models.RequestStatusPending, nil, "Plumbing", "Plumbing", nil},
		{"category mismatch", models.RequestStatusPending, nil, "Plumbing", "Cleaning", ErrCategoryMismatch},
		{"empty category name", models.RequestStatusPending, nil, "", "", ErrCategoryMismatch},
		{"already accepted", models.RequestStatusAccepted, &claimed, "Plumbing", "Plumbing", ErrInvalidTransition},
		{"already rejected", models.RequestStatusRejected, &claimed, "Plumbing", "Plumbing", ErrInvalidTransition},
		{"completed", models.RequestStatusCompleted, &claimed, "Plumbing", "Plumbing", ErrInvalidTransition},
		{"cancelled", models.RequestStatusCancelled, nil, "Plumbing", "Plumbing", ErrInvalidTransition},
		{"pending but already claimed", models.RequestStatusPending, &claimed, "Plumbing", "Plumbing", ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pendingRequest(uuid.New())
			req.Status = tt.status
			req.ProfessionalID = tt.professional

			if got := canDecide(req, tt.categoryName, tt.serviceType); got != tt.want {
				t.Errorf("canDecide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanComplete(t *testing.T) {
	pro := uuid.New()
	other := uuid.New()

	tests := []struct {
		name         string
		status       models.RequestStatus
		professional *uuid.UUID
		caller       uuid.UUID
		want         error
	}{
		{"bound professional on accepted", models.RequestStatusAccepted, &pro, pro, nil},
		{"unbound request", models.RequestStatusAccepted, nil, pro, ErrForbidden},
		{"different professional", models.RequestStatusAccepted, &other, pro, ErrForbidden},
		{"still pending", models.RequestStatusPending, &pro, pro, ErrInvalidTransition},
		{"already completed", models.RequestStatusCompleted, &pro, pro, ErrInvalidTransition},
		{"rejected", models.RequestStatusRejected, &pro, pro, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pendingRequest(uuid.New())
			req.Status = tt.status
			req.ProfessionalID = tt.professional

			if got := canComplete(req, tt.caller); got != tt.want {
				t.Errorf("canComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name   string
		status models.RequestStatus
		caller uuid.UUID
		want   error
	}{
		{"owner while pending", models.RequestStatusPending, owner, nil},
		{"not the owner", models.RequestStatusPending, stranger, ErrForbidden},
		{"already accepted", models.RequestStatusAccepted, owner, ErrInvalidTransition},
		{"already cancelled", models.RequestStatusCancelled, owner, ErrInvalidTransition},
		{"already completed", models.RequestStatusCompleted, owner, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pendingRequest(owner)
			req.Status = tt.status

			if got := canCancel(req, tt.caller); got != tt.want {
				t.Errorf("canCancel() = %v, want %v", got, tt.want)
			}
		})
	}
}
