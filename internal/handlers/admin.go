package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/rating"
)

type AdminHandler struct {
	DB        *gorm.DB
	Lifecycle *lifecycle.Service
	Rating    *rating.Service
}

func NewAdminHandler(db *gorm.DB, lc *lifecycle.Service, rs *rating.Service) *AdminHandler {
	return &AdminHandler{DB: db, Lifecycle: lc, Rating: rs}
}

// ListProfessionals returns every professional with their live average
// rating so the dashboard can render approval and quality in one pass.
func (h *AdminHandler) ListProfessionals(c *fiber.Ctx) error {
	var pros []models.User
	if err := h.DB.Where("role = ?", models.RoleProfessional).
		Order("created_at DESC").
		Find(&pros).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch professionals")
	}

	out := make([]fiber.Map, 0, len(pros))
	for _, p := range pros {
		avg, err := h.Rating.AverageFor(p.ID)
		if err != nil {
			avg = 0.0
		}
		out = append(out, fiber.Map{
			"id":             p.ID,
			"name":           p.Name,
			"email":          p.Email,
			"service_type":   p.ServiceType,
			"experience":     p.Experience,
			"document_path":  p.DocumentPath,
			"approved":       p.Approved,
			"active":         p.Active,
			"average_rating": avg,
			"created_at":     p.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	var customers []models.User
	if err := h.DB.Where("role = ?", models.RoleCustomer).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch customers")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    customers,
	})
}

func (h *AdminHandler) ApproveProfessional(c *fiber.Ctx) error {
	pro, ok := h.findProfessional(c)
	if !ok {
		return nil
	}
	if pro.Approved {
		return fail(c, fiber.StatusBadRequest, "Professional is already approved")
	}

	if err := h.DB.Model(pro).Update("approved", true).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to approve professional")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Professional approved successfully",
	})
}

// RejectProfessional removes an unapproved signup entirely, including the
// uploaded verification document.
func (h *AdminHandler) RejectProfessional(c *fiber.Ctx) error {
	pro, ok := h.findProfessional(c)
	if !ok {
		return nil
	}
	if pro.Approved {
		return fail(c, fiber.StatusBadRequest, "Cannot reject an approved professional")
	}

	if err := h.DB.Delete(pro).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to reject professional")
	}
	if pro.DocumentPath != "" {
		_ = os.Remove(pro.DocumentPath)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Professional rejected successfully",
	})
}

// BlockUser flips Active off. A blocked user keeps their rows but cannot
// sign in until unblocked.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	return h.setActive(c, false, "User blocked successfully")
}

func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	return h.setActive(c, true, "User unblocked successfully")
}

func (h *AdminHandler) setActive(c *fiber.Ctx, active bool, okMsg string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if u.Role == models.RoleAdmin {
		return fail(c, fiber.StatusBadRequest, "Cannot block an admin account")
	}

	if err := h.DB.Model(&u).Update("active", active).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": okMsg,
	})
}

// ListRequests is the admin view over every service request, any status.
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	reqs, err := h.Lifecycle.All()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch service requests")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    reqs,
	})
}

// DeleteReview is the moderation hook; averages recompute on the next
// read, so nothing else needs touching.
func (h *AdminHandler) DeleteReview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var review models.Review
	if err := h.DB.First(&review, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Review not found")
	}
	if err := h.DB.Delete(&review).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete review")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}

// findProfessional writes the error response itself when the lookup fails
// and reports that through the bool.
func (h *AdminHandler) findProfessional(c *fiber.Ctx) (*models.User, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = fail(c, fiber.StatusBadRequest, "Invalid professional ID")
		return nil, false
	}

	var pro models.User
	if err := h.DB.First(&pro, "id = ? AND role = ?", id, models.RoleProfessional).Error; err != nil {
		_ = fail(c, fiber.StatusNotFound, "Professional not found")
		return nil, false
	}
	return &pro, true
}
