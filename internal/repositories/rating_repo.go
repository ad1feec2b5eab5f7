package repositories

import "souq/internal/models"

// RatingRepository defines the interface for rating data access. Ratings are
// append-only.
type RatingRepository interface {
	Create(rating *models.Rating) error
	// AverageForSupplier returns the mean score and the number of ratings for
	// a supplier. A supplier with no ratings yields count 0; the average is
	// meaningless in that case and callers must not render it.
	AverageForSupplier(supplierID string) (float64, int64, error)
}
