package repositories

import "souq/internal/models"

// OfferRepository defines the interface for offer data access. Offers are
// append-only, so there is no update or delete.
type OfferRepository interface {
	Create(offer *models.Offer) error
	GetByOrderID(orderID string) ([]models.Offer, error)
	CountForFactory(factoryID string) (int64, error)
}
