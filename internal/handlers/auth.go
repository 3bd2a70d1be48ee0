package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
	UploadDir string
}

type SignupCustomerReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
	PhoneNumber string `json:"phone_number"`
}

func (h *AuthHandler) SignupCustomer(c *fiber.Ctx) error {
	var req SignupCustomerReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Invalid email format")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if strings.TrimSpace(req.Address) == "" {
		errs.Add("address", "Address is required")
	}
	if strings.TrimSpace(req.Pincode) == "" {
		errs.Add("pincode", "Pincode is required")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		errs.Add("phone_number", "Phone number is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if err := h.ensureEmailFree(email); err != nil {
		if err == errEmailTaken {
			errs.Add("email", "Email is already registered")
			return validationFail(c, errs)
		}
		return fail(c, fiber.StatusInternalServerError, "Unexpected server error")
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to process password")
	}

	u := models.User{
		Name:        name,
		Email:       email,
		Password:    pw,
		Role:        models.RoleCustomer,
		Address:     strings.TrimSpace(req.Address),
		Pincode:     strings.TrimSpace(req.Pincode),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Active:      true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Customer created successfully",
		"data":    userPayload(&u),
	})
}

// SignupProfessional takes a multipart form: profile fields plus the
// verification document. A new professional starts unapproved and must be
// approved by an admin before customers see them as trustworthy.
func (h *AuthHandler) SignupProfessional(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := strings.TrimSpace(c.FormValue("password"))
	address := strings.TrimSpace(c.FormValue("address"))
	pincode := strings.TrimSpace(c.FormValue("pincode"))
	phone := strings.TrimSpace(c.FormValue("phone_number"))
	serviceType := strings.TrimSpace(c.FormValue("service_type"))
	expRaw := strings.TrimSpace(c.FormValue("experience"))

	errs := FieldErrors{}
	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Invalid email format")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if address == "" {
		errs.Add("address", "Address is required")
	}
	if pincode == "" {
		errs.Add("pincode", "Pincode is required")
	}
	if phone == "" {
		errs.Add("phone_number", "Phone number is required")
	}
	if serviceType == "" {
		errs.Add("service_type", "Service type is required")
	}
	experience := 0
	if expRaw == "" {
		errs.Add("experience", "Experience is required")
	} else {
		n, err := strconv.Atoi(expRaw)
		if err != nil || n < 0 {
			errs.Add("experience", "Experience must be a non-negative number")
		}
		experience = n
	}

	doc, err := c.FormFile("document")
	if err != nil || doc == nil {
		errs.Add("document", "Document is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	if err := h.ensureEmailFree(email); err != nil {
		if err == errEmailTaken {
			errs.Add("email", "Email is already registered")
			return validationFail(c, errs)
		}
		return fail(c, fiber.StatusInternalServerError, "Unexpected server error")
	}

	if doc.Size > 5*1024*1024 {
		return fail(c, fiber.StatusBadRequest, "Document exceeds 5MB limit")
	}

	docDir := filepath.Join(h.UploadDir, "documents")
	if err := os.MkdirAll(docDir, 0755); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to store document")
	}
	ext := filepath.Ext(doc.Filename)
	docPath := filepath.Join(docDir, uuid.New().String()+ext)
	if err := c.SaveFile(doc, docPath); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to store document")
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to process password")
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Password:     pw,
		Role:         models.RoleProfessional,
		Address:      address,
		Pincode:      pincode,
		PhoneNumber:  phone,
		ServiceType:  serviceType,
		Experience:   experience,
		DocumentPath: docPath,
		Approved:     false,
		Active:       true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Professional created successfully",
		"data":    userPayload(&u),
	})
}

type SigninReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req SigninReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if email == "" {
		errs.Add("email", "Email is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !u.Active {
		return fail(c, fiber.StatusUnauthorized, "Account is blocked")
	}
	if !utils.CheckPassword(u.Password, password) {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	h.setTokenCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed in successfully",
		"data": fiber.Map{
			"user":  userPayload(&u),
			"token": token,
		},
	})
}

func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Signed out successfully",
	})
}

// Me returns the account behind the current token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(&u),
	})
}

type UpdateProfileReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
	PhoneNumber string `json:"phone_number"`
	ServiceType string `json:"service_type"`
	Experience  *int   `json:"experience"`
}

// UpdateProfile patches the caller's own profile. Email, password and role
// are not editable here; service type and experience only apply to
// professionals.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", uid).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "User not found")
	}

	if v := strings.TrimSpace(req.Name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		u.Address = v
	}
	if v := strings.TrimSpace(req.Pincode); v != "" {
		u.Pincode = v
	}
	if v := strings.TrimSpace(req.PhoneNumber); v != "" {
		u.PhoneNumber = v
	}
	if u.Role == models.RoleProfessional {
		if v := strings.TrimSpace(req.ServiceType); v != "" {
			u.ServiceType = v
		}
		if req.Experience != nil && *req.Experience >= 0 {
			u.Experience = *req.Experience
		}
	}

	if err := h.DB.Save(&u).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"data":    userPayload(&u),
	})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

var errEmailTaken = fmt.Errorf("email taken")

func (h *AuthHandler) ensureEmailFree(email string) error {
	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return errEmailTaken
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return nil
}

func userPayload(u *models.User) fiber.Map {
	m := fiber.Map{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"role":         u.Role,
		"address":      u.Address,
		"pincode":      u.Pincode,
		"phone_number": u.PhoneNumber,
		"active":       u.Active,
	}
	if u.Role == models.RoleProfessional {
		m["service_type"] = u.ServiceType
		m["experience"] = u.Experience
		m["document_path"] = u.DocumentPath
		m["approved"] = u.Approved
	}
	return m
}
