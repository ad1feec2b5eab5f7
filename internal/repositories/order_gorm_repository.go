package repositories

import (
	"errors"
	"fmt"
	"time"

	"souq/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates a new order in the database.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order by its ID from the database.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetPage retrieves one page of orders, newest first, with the total count.
func (r *GORMOrderRepository) GetPage(offset, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}
	var orders []models.Order
	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// GetByUserID retrieves all orders owned by a user, newest first.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// Update updates an existing order in the database.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Save(order) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s for update: %w", order.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an order by its ID from the database.
func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// CountByUserID counts the orders owned by a user.
func (r *GORMOrderRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders for user %s: %w", userID, err)
	}
	return count, nil
}

// LatestByUserID returns the creation time of the user's most recent order,
// or nil when the user has no orders.
func (r *GORMOrderRepository) LatestByUserID(userID string) (*time.Time, error) {
	var order models.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest order for user %s: %w", userID, err)
	}
	t := order.CreatedAt
	return &t, nil
}
