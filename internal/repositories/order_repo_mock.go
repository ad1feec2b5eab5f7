package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"souq/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetPage returns one page of orders, newest first, with the total count.
func (r *MockOrderRepository) GetPage(offset, limit int) ([]models.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedLocked()
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Order{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// GetByUserID returns all orders owned by a user, newest first.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.sortedLocked() {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// Update replaces an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order with ID %s for update: %w", order.ID, ErrNotFound)
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

// CountByUserID counts the orders owned by a user.
func (r *MockOrderRepository) CountByUserID(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if order.UserID == userID {
			count++
		}
	}
	return count, nil
}

// LatestByUserID returns the creation time of the user's most recent order.
func (r *MockOrderRepository) LatestByUserID(userID string) (*time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *time.Time
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if latest == nil || order.CreatedAt.After(*latest) {
			t := order.CreatedAt
			latest = &t
		}
	}
	return latest, nil
}

// sortedLocked returns all orders newest first. Callers must hold the lock.
func (r *MockOrderRepository) sortedLocked() []models.Order {
	all := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}
