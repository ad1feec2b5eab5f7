package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"souq/internal/models"

	"github.com/google/uuid"
)

// MockOfferRepository is an in-memory implementation of OfferRepository.
// CountForFactory needs order ownership, so the mock is constructed over an
// OrderRepository to resolve it.
type MockOfferRepository struct {
	offers map[string]models.Offer
	orders OrderRepository
	mu     sync.RWMutex
}

// NewMockOfferRepository creates a new instance of MockOfferRepository.
func NewMockOfferRepository(orders OrderRepository) *MockOfferRepository {
	return &MockOfferRepository{
		offers: make(map[string]models.Offer),
		orders: orders,
	}
}

// Create adds a new offer.
func (r *MockOfferRepository) Create(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	offer.CreatedAt = time.Now()
	r.offers[offer.ID] = *offer
	return nil
}

// GetByOrderID returns all offers against an order, oldest first.
func (r *MockOfferRepository) GetByOrderID(orderID string) ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var offers []models.Offer
	for _, offer := range r.offers {
		if offer.OrderID == orderID {
			offers = append(offers, offer)
		}
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].CreatedAt.Before(offers[j].CreatedAt) })
	return offers, nil
}

// CountForFactory counts offers against any order owned by the factory.
func (r *MockOfferRepository) CountForFactory(factoryID string) (int64, error) {
	if r.orders == nil {
		return 0, fmt.Errorf("mock offer repository has no order repository")
	}

	owned, err := r.orders.GetByUserID(factoryID)
	if err != nil {
		return 0, err
	}
	ownedIDs := make(map[string]bool, len(owned))
	for _, order := range owned {
		ownedIDs[order.ID] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, offer := range r.offers {
		if ownedIDs[offer.OrderID] {
			count++
		}
	}
	return count, nil
}
