package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProfessional Role = "professional"
	RoleCustomer     Role = "customer"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`

	Address     string `gorm:"type:text" json:"address"`
	Pincode     string `gorm:"type:varchar(10)" json:"pincode"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number"`

	// Professional-only fields. Approved/Active carry meaning only when
	// Role == RoleProfessional.
	ServiceType  string `gorm:"type:varchar(120);index" json:"service_type,omitempty"`
	Experience   int    `json:"experience,omitempty"` // years
	DocumentPath string `gorm:"type:text" json:"document_path,omitempty"`
	Approved     bool   `gorm:"default:false" json:"approved"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
