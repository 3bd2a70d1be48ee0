package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/rating"
)

type ReviewHandler struct {
	DB     *gorm.DB
	Rating *rating.Service
}

func NewReviewHandler(db *gorm.DB, rs *rating.Service) *ReviewHandler {
	return &ReviewHandler{DB: db, Rating: rs}
}

type CreateReviewReq struct {
	ProfessionalID string `json:"professional_id"`
	Rating         *int   `json:"rating"`
	ReviewText     string `json:"review_text"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	customerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateReviewReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.Rating == nil {
		return fail(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}
	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid professional ID is required")
	}

	review, err := h.Rating.Create(customerID, professionalID, *req.Rating, req.ReviewText)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrInvalidRating):
			return fail(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
		case errors.Is(err, rating.ErrProfessionalNotFound):
			return fail(c, fiber.StatusNotFound, "Professional not found")
		default:
			return fail(c, fiber.StatusInternalServerError, "Failed to submit review")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Review submitted successfully",
		"data":    review,
	})
}

// ProfessionalRating returns the live average; it is recomputed on every
// call, never stored.
func (h *ReviewHandler) ProfessionalRating(c *fiber.Ctx) error {
	professionalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid professional ID")
	}

	var pro models.User
	if err := h.DB.First(&pro, "id = ? AND role = ?", professionalID, models.RoleProfessional).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Professional not found")
	}

	avg, err := h.Rating.AverageFor(professionalID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to compute rating")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"professional_id":    pro.ID,
			"professional_name":  pro.Name,
			"professional_phone": pro.PhoneNumber,
			"average_rating":     avg,
		},
	})
}
