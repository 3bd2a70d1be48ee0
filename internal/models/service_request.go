package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusAccepted  RequestStatus = "Accepted"
	RequestStatusRejected  RequestStatus = "Rejected"
	RequestStatusCompleted RequestStatus = "Completed"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

type ServiceRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	// ProfessionalID stays nil until a professional accepts or rejects the
	// request. Once set it is never cleared or reassigned.
	ProfessionalID *uuid.UUID `gorm:"type:uuid;index" json:"professional_id"`
	ServiceID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"service_id"`

	RequestDate time.Time     `gorm:"not null;default:now()" json:"request_date"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Remarks     string        `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer     *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Professional *User    `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Service      *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
