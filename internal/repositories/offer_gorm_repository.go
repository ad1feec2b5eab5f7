package repositories

import (
	"fmt"

	"souq/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOfferRepository is a GORM implementation of OfferRepository.
type GORMOfferRepository struct {
	db *gorm.DB
}

// NewGORMOfferRepository creates a new instance of GORMOfferRepository.
func NewGORMOfferRepository(db *gorm.DB) *GORMOfferRepository {
	return &GORMOfferRepository{
		db: db,
	}
}

// Create creates a new offer in the database.
func (r *GORMOfferRepository) Create(offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// GetByOrderID retrieves all offers submitted against an order, oldest first.
func (r *GORMOfferRepository) GetByOrderID(orderID string) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Where("order_id = ?", orderID).Order("created_at asc").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list offers for order %s: %w", orderID, err)
	}
	return offers, nil
}

// CountForFactory counts offers submitted against any order owned by the
// given factory user.
func (r *GORMOfferRepository) CountForFactory(factoryID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Offer{}).
		Joins("JOIN orders ON orders.id = offers.order_id").
		Where("orders.user_id = ?", factoryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count offers for factory %s: %w", factoryID, err)
	}
	return count, nil
}
