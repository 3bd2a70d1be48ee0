package rating

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
)

var (
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrProfessionalNotFound = errors.New("professional not found")
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ValidRating reports whether n is an allowed review rating. Bounds are
// inclusive: 1 and 5 are accepted, 0 and 6 are not.
func ValidRating(n int) bool {
	return n >= 1 && n <= 5
}

// AverageFor returns the mean rating across every review a professional has
// received, rounded to two decimals. No reviews means 0.0, never an error.
func (s *Service) AverageFor(professionalID uuid.UUID) (float64, error) {
	var avg float64
	err := s.DB.Model(&models.Review{}).
		Where("professional_id = ?", professionalID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return Round2(avg), nil
}

// Round2 rounds to two decimal places, matching how ratings are displayed.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Create stores an immutable review. Reviews are aggregated afterwards,
// never edited.
func (s *Service) Create(customerID, professionalID uuid.UUID, ratingValue int, text string) (*models.Review, error) {
	if !ValidRating(ratingValue) {
		return nil, ErrInvalidRating
	}

	var pro models.User
	if err := s.DB.First(&pro, "id = ? AND role = ?", professionalID, models.RoleProfessional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	review := models.Review{
		CustomerID:     customerID,
		ProfessionalID: professionalID,
		Rating:         ratingValue,
		ReviewText:     text,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}
