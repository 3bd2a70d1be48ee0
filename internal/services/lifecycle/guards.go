package lifecycle

import (
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

// canDecide guards the Pending -> Accepted/Rejected edge: the request must
// still be unclaimed and the professional's declared service type must equal
// the name of the category the requested service belongs to.
func canDecide(req *models.ServiceRequest, categoryName, serviceType string) error {
	if req.Status != models.RequestStatusPending {
		return ErrInvalidTransition
	}
	if req.ProfessionalID != nil {
		return ErrConflict
	}
	if categoryName == "" || categoryName != serviceType {
		return ErrCategoryMismatch
	}
	return nil
}

// canComplete guards Accepted -> Completed: only the bound professional may
// close the request.
func canComplete(req *models.ServiceRequest, professionalID uuid.UUID) error {
	if req.ProfessionalID == nil || *req.ProfessionalID != professionalID {
		return ErrForbidden
	}
	if req.Status != models.RequestStatusAccepted {
		return ErrInvalidTransition
	}
	return nil
}

// canCancel guards Pending -> Cancelled: only the owning customer, and only
// while no professional has picked the request up.
func canCancel(req *models.ServiceRequest, customerID uuid.UUID) error {
	if req.CustomerID != customerID {
		return ErrForbidden
	}
	if req.Status != models.RequestStatusPending {
		return ErrInvalidTransition
	}
	return nil
}
