package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

type ServiceHandler struct {
	DB *gorm.DB

	// service mutations change what the category listing embeds
	Categories *CategoryHandler
}

func NewServiceHandler(db *gorm.DB, categories *CategoryHandler) *ServiceHandler {
	return &ServiceHandler{DB: db, Categories: categories}
}

func (h *ServiceHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	var svc models.Service
	if err := h.DB.Preload("Category").First(&svc, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    svc,
	})
}

type SearchReq struct {
	Query string `json:"query"`
}

// Search matches service names case-insensitively on a substring.
func (h *ServiceHandler) Search(c *fiber.Ctx) error {
	var req SearchReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	var services []models.Service
	if err := h.DB.Preload("Category").
		Where("name ILIKE ?", "%"+strings.TrimSpace(req.Query)+"%").
		Order("name ASC").
		Find(&services).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to search services")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services,
	})
}

type ServiceReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id"`
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	var req ServiceReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		errs.Add("description", "Description is required")
	}
	if req.Price <= 0 {
		errs.Add("price", "Price must be positive")
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		errs.Add("category_id", "Valid category ID is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var category models.Category
	if err := h.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return fail(c, fiber.StatusBadRequest, "Category not found")
	}

	svc := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		CategoryID:  categoryID,
	}
	if err := h.DB.Create(&svc).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create service")
	}

	h.Categories.invalidateCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service added successfully",
		"data":    svc,
	})
}

func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	var req ServiceReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	var svc models.Service
	if err := h.DB.First(&svc, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}

	if strings.TrimSpace(req.Name) != "" {
		svc.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Description) != "" {
		svc.Description = strings.TrimSpace(req.Description)
	}
	if req.Price > 0 {
		svc.Price = req.Price
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid category ID")
		}
		var category models.Category
		if err := h.DB.First(&category, "id = ?", categoryID).Error; err != nil {
			return fail(c, fiber.StatusBadRequest, "Category not found")
		}
		svc.CategoryID = categoryID
	}

	if err := h.DB.Save(&svc).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update service")
	}

	h.Categories.invalidateCache()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service updated successfully",
		"data":    svc,
	})
}

// Delete removes the service and every request that referenced it.
func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid service ID")
	}

	var svc models.Service
	if err := h.DB.First(&svc, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete service")
	}

	h.Categories.invalidateCache()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service deleted successfully",
	})
}
