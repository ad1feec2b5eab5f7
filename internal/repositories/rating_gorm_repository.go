package repositories

import (
	"fmt"

	"souq/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Create creates a new rating in the database.
func (r *GORMRatingRepository) Create(rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	if err := r.db.Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// AverageForSupplier returns the mean score and count of a supplier's ratings.
func (r *GORMRatingRepository) AverageForSupplier(supplierID string) (float64, int64, error) {
	var count int64
	if err := r.db.Model(&models.Rating{}).Where("supplier_id = ?", supplierID).Count(&count).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count ratings for supplier %s: %w", supplierID, err)
	}
	if count == 0 {
		return 0, 0, nil
	}
	var avg float64
	if err := r.db.Model(&models.Rating{}).Where("supplier_id = ?", supplierID).
		Select("AVG(score)").Scan(&avg).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to average ratings for supplier %s: %w", supplierID, err)
	}
	return avg, count, nil
}
