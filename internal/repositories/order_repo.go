package repositories

import (
	"time"

	"souq/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetPage(offset, limit int) ([]models.Order, int64, error)
	GetByUserID(userID string) ([]models.Order, error)
	Update(order *models.Order) error
	Delete(id string) error
	CountByUserID(userID string) (int64, error)
	LatestByUserID(userID string) (*time.Time, error)
}
