package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

const categoryCacheKey = "cache:categories"

type CategoryHandler struct {
	DB       *gorm.DB
	RDB      *redis.Client
	CacheTTL time.Duration
}

func NewCategoryHandler(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *CategoryHandler {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CategoryHandler{DB: db, RDB: rdb, CacheTTL: cacheTTL}
}

// List serves the public category listing from Redis when possible. The key
// is invalidated explicitly on every admin mutation, so a short TTL is just
// a backstop.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()

	if cached, err := h.RDB.Get(ctx, categoryCacheKey).Bytes(); err == nil {
		var categories []models.Category
		if json.Unmarshal(cached, &categories) == nil {
			c.Set("X-Cache", "HIT")
			return c.JSON(fiber.Map{
				"success": true,
				"data":    categories,
			})
		}
	}

	var categories []models.Category
	if err := h.DB.Preload("Services").Order("name ASC").Find(&categories).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}

	if b, err := json.Marshal(categories); err == nil {
		if err := h.RDB.Set(ctx, categoryCacheKey, b, h.CacheTTL).Err(); err != nil {
			log.Println("[CategoryCache] failed to store listing:", err)
		}
	}

	c.Set("X-Cache", "MISS")
	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var category models.Category
	if err := h.DB.Preload("Services").First(&category, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

func (h *CategoryHandler) ServicesByCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var services []models.Service
	if err := h.DB.Where("category_id = ?", id).Order("name ASC").Find(&services).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    services,
	})
}

type CategoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req CategoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return fail(c, fiber.StatusBadRequest, "Name is required")
	}

	var existing models.Category
	if err := h.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return fail(c, fiber.StatusBadRequest, "Category already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusInternalServerError, "Unexpected server error")
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&category).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create category")
	}

	h.invalidateCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Category added successfully",
		"data":    category,
	})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var req CategoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	var category models.Category
	if err := h.DB.First(&category, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if err := h.DB.Save(&category).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update category")
	}

	h.invalidateCache()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

// Delete removes the category together with its services and their
// requests, all in one transaction.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var category models.Category
	if err := h.DB.First(&category, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Category not found")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var serviceIDs []uuid.UUID
		if err := tx.Model(&models.Service{}).
			Where("category_id = ?", id).
			Pluck("id", &serviceIDs).Error; err != nil {
			return err
		}
		if len(serviceIDs) > 0 {
			if err := tx.Where("service_id IN ?", serviceIDs).
				Delete(&models.ServiceRequest{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).
				Delete(&models.Service{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	h.invalidateCache()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted successfully",
	})
}

func (h *CategoryHandler) invalidateCache() {
	if err := h.RDB.Del(context.Background(), categoryCacheKey).Err(); err != nil {
		log.Println("[CategoryCache] failed to invalidate:", err)
	}
}
