package lifecycle

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create opens a new request in Pending with no professional bound.
func (s *Service) Create(customerID, serviceID uuid.UUID, remarks string) (*models.ServiceRequest, error) {
	var svc models.Service
	if err := s.DB.First(&svc, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	req := models.ServiceRequest{
		ID:         uuid.New(),
		CustomerID: customerID,
		ServiceID:  serviceID,
		Status:     models.RequestStatusPending,
		Remarks:    remarks,
	}
	if err := s.DB.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Accept binds the professional and moves Pending -> Accepted.
func (s *Service) Accept(professionalID, requestID uuid.UUID) (*models.ServiceRequest, error) {
	return s.decide(professionalID, requestID, models.RequestStatusAccepted)
}

// Reject binds the professional and moves Pending -> Rejected. A rejected
// request does not go back to the queue; this mirrors the one-shot claim
// model where professionals self-select work.
func (s *Service) Reject(professionalID, requestID uuid.UUID) (*models.ServiceRequest, error) {
	return s.decide(professionalID, requestID, models.RequestStatusRejected)
}

func (s *Service) decide(professionalID, requestID uuid.UUID, to models.RequestStatus) (*models.ServiceRequest, error) {
	var out models.ServiceRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pro models.User
		if err := tx.First(&pro, "id = ? AND role = ?", professionalID, models.RoleProfessional).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrForbidden
			}
			return err
		}

		var req models.ServiceRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		categoryName, err := s.categoryNameFor(tx, req.ServiceID)
		if err != nil {
			return err
		}
		if err := canDecide(&req, categoryName, pro.ServiceType); err != nil {
			return err
		}

		// Conditional update: only wins if the row is still unclaimed.
		res := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ? AND professional_id IS NULL", req.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{
				"status":          to,
				"professional_id": professionalID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		req.Status = to
		req.ProfessionalID = &professionalID
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Complete moves Accepted -> Completed, only for the bound professional.
func (s *Service) Complete(professionalID, requestID uuid.UUID) (*models.ServiceRequest, error) {
	var out models.ServiceRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ServiceRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := canComplete(&req, professionalID); err != nil {
			return err
		}

		res := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ? AND professional_id = ?", req.ID, models.RequestStatusAccepted, professionalID).
			Update("status", models.RequestStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		req.Status = models.RequestStatusCompleted
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel moves Pending -> Cancelled, only for the owning customer.
func (s *Service) Cancel(customerID, requestID uuid.UUID) (*models.ServiceRequest, error) {
	var out models.ServiceRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.ServiceRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := canCancel(&req, customerID); err != nil {
			return err
		}

		res := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ?", req.ID, models.RequestStatusPending).
			Update("status", models.RequestStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		req.Status = models.RequestStatusCancelled
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) categoryNameFor(tx *gorm.DB, serviceID uuid.UUID) (string, error) {
	var name string
	err := tx.Table("services").
		Joins("JOIN categories ON categories.id = services.category_id").
		Where("services.id = ?", serviceID).
		Select("categories.name").
		Scan(&name).Error
	return name, err
}

// QueueFor lists the open work a professional can pick from: requests whose
// service category matches their service type, still Pending or Accepted.
func (s *Service) QueueFor(professional *models.User) ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	err := s.DB.
		Preload("Customer").
		Preload("Service").
		Preload("Service.Category").
		Joins("JOIN services ON services.id = service_requests.service_id").
		Joins("JOIN categories ON categories.id = services.category_id").
		Where("categories.name = ?", professional.ServiceType).
		Where("service_requests.status IN ?", []models.RequestStatus{
			models.RequestStatusPending,
			models.RequestStatusAccepted,
		}).
		Order("service_requests.request_date ASC").
		Find(&reqs).Error
	return reqs, err
}

// HistoryFor lists the requests a professional already decided or closed.
func (s *Service) HistoryFor(professionalID uuid.UUID) ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	err := s.DB.
		Preload("Customer").
		Preload("Service").
		Where("professional_id = ?", professionalID).
		Where("status IN ?", []models.RequestStatus{
			models.RequestStatusRejected,
			models.RequestStatusCompleted,
		}).
		Order("request_date DESC").
		Find(&reqs).Error
	return reqs, err
}

// ForCustomer lists everything the customer ever requested, any status.
func (s *Service) ForCustomer(customerID uuid.UUID) ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	err := s.DB.
		Preload("Professional").
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("request_date DESC").
		Find(&reqs).Error
	return reqs, err
}

// All is the admin view over every request.
func (s *Service) All() ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	err := s.DB.
		Preload("Customer").
		Preload("Professional").
		Preload("Service").
		Order("request_date DESC").
		Find(&reqs).Error
	return reqs, err
}
