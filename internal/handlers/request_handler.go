package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/lifecycle"
)

// requestLifecycle is what the handler needs from the lifecycle service.
type requestLifecycle interface {
	Create(customerID, serviceID uuid.UUID, remarks string) (*models.ServiceRequest, error)
	Cancel(customerID, requestID uuid.UUID) (*models.ServiceRequest, error)
	Accept(professionalID, requestID uuid.UUID) (*models.ServiceRequest, error)
	Reject(professionalID, requestID uuid.UUID) (*models.ServiceRequest, error)
	Complete(professionalID, requestID uuid.UUID) (*models.ServiceRequest, error)
	QueueFor(professional *models.User) ([]models.ServiceRequest, error)
	HistoryFor(professionalID uuid.UUID) ([]models.ServiceRequest, error)
	ForCustomer(customerID uuid.UUID) ([]models.ServiceRequest, error)
}

type RequestHandler struct {
	DB        *gorm.DB
	Lifecycle requestLifecycle
}

func NewRequestHandler(db *gorm.DB, lc *lifecycle.Service) *RequestHandler {
	return &RequestHandler{DB: db, Lifecycle: lc}
}

type CreateRequestReq struct {
	ServiceID string `json:"service_id"`
	Remarks   string `json:"remarks"`
}

// Create opens a new Pending request owned by the calling customer.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	customerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateRequestReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid service ID is required")
	}

	sr, err := h.Lifecycle.Create(customerID, serviceID, strings.TrimSpace(req.Remarks))
	if err != nil {
		if err == lifecycle.ErrNotFound {
			return fail(c, fiber.StatusNotFound, "Service not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to create service request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service requested successfully",
		"data":    sr,
	})
}

func (h *RequestHandler) Cancel(c *fiber.Ctx) error {
	customerID, err := getAuth(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	sr, err := h.Lifecycle.Cancel(customerID, requestID)
	if err != nil {
		return lifecycleFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service request cancelled successfully",
		"data":    sr,
	})
}

// ListMine is the customer's full history, any status.
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	customerID, err := getAuth(c)
	if err != nil {
		return err
	}

	reqs, err := h.Lifecycle.ForCustomer(customerID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch service requests")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    reqs,
	})
}

// Queue lists the open requests matching the professional's service type.
func (h *RequestHandler) Queue(c *fiber.Ctx) error {
	proID, err := getAuth(c)
	if err != nil {
		return err
	}

	var pro models.User
	if err := h.DB.First(&pro, "id = ? AND role = ?", proID, models.RoleProfessional).Error; err != nil {
		return fail(c, fiber.StatusForbidden, "Professional account not found")
	}

	reqs, err := h.Lifecycle.QueueFor(&pro)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch service requests")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    reqs,
	})
}

func (h *RequestHandler) Accept(c *fiber.Ctx) error {
	return h.decide(c, h.Lifecycle.Accept, "Service request accepted successfully")
}

func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.Lifecycle.Reject, "Service request rejected successfully")
}

func (h *RequestHandler) decide(c *fiber.Ctx, op func(uuid.UUID, uuid.UUID) (*models.ServiceRequest, error), okMsg string) error {
	proID, err := getAuth(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	sr, err := op(proID, requestID)
	if err != nil {
		return lifecycleFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": okMsg,
		"data":    sr,
	})
}

func (h *RequestHandler) Complete(c *fiber.Ctx) error {
	proID, err := getAuth(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	sr, err := h.Lifecycle.Complete(proID, requestID)
	if err != nil {
		return lifecycleFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service request completed successfully",
		"data":    sr,
	})
}

// History lists what the professional already rejected or completed.
func (h *RequestHandler) History(c *fiber.Ctx) error {
	proID, err := getAuth(c)
	if err != nil {
		return err
	}

	reqs, err := h.Lifecycle.HistoryFor(proID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch request history")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    reqs,
	})
}
