package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`

	Rating     int    `gorm:"not null" json:"rating"` // 1-5
	ReviewText string `gorm:"type:text" json:"review_text"`

	CreatedAt time.Time `json:"created_at"`

	Customer     *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Professional *User `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
