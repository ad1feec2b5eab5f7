package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"souq/internal/models"
	"souq/internal/repositories"

	"github.com/google/uuid"
)

// Listing page bounds for the supplier-facing order listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrderUpdate carries the mutable fields of an order for an edit.
type OrderUpdate struct {
	Title        string
	Description  string
	Sector       string
	Quantity     int
	DeliveryDate time.Time
}

// OrderStats aggregates a factory's activity for its dashboard.
type OrderStats struct {
	Orders         int64      `json:"orders"`
	OffersReceived int64      `json:"offers_received"`
	LastOrderAt    *time.Time `json:"last_order_at"`
}

// OrderService handles business logic for the order/offer workflow.
type OrderService struct {
	orderRepo repositories.OrderRepository
	offerRepo repositories.OfferRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, offerRepo repositories.OfferRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		offerRepo: offerRepo,
		publisher: publisher,
	}
}

// CreateOrder persists a factory's sourcing order and publishes an
// order.created event. The caller has already been role-gated; the owning
// user id comes from the session, never the request body.
func (s *OrderService) CreateOrder(order *models.Order) (*models.Order, error) {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publish(EventOrderCreated, map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"sector":  order.Sector,
		"title":   order.Title,
	})
	return order, nil
}

// ListOrders returns one page of all open orders for supplier browsing.
// Page and limit are normalized here so no caller can request an unbounded
// listing.
func (s *OrderService) ListOrders(page, limit int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return s.orderRepo.GetPage((page-1)*limit, limit)
}

// GetOwnedOrder loads an order and verifies ownership. A missing order and
// someone else's order both come back as ErrNotFound.
func (s *OrderService) GetOwnedOrder(actorID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actorID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, ErrNotFound)
	}
	return order, nil
}

// EditOrder applies an update to an order owned by the acting user.
func (s *OrderService) EditOrder(actorID, orderID string, update OrderUpdate) (*models.Order, error) {
	order, err := s.GetOwnedOrder(actorID, orderID)
	if err != nil {
		return nil, err
	}
	if update.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	order.Title = update.Title
	order.Description = update.Description
	order.Sector = update.Sector
	order.Quantity = update.Quantity
	order.DeliveryDate = update.DeliveryDate

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	return order, nil
}

// DeleteOrder deletes an order owned by the acting user and returns it so
// the caller can clean up any attachment.
func (s *OrderService) DeleteOrder(actorID, orderID string) (*models.Order, error) {
	order, err := s.GetOwnedOrder(actorID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Delete(orderID); err != nil {
		return nil, fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	return order, nil
}

// SubmitOffer appends a supplier's offer against an existing order. An offer
// against a missing order fails with ErrNotFound instead of writing an
// orphan row.
func (s *OrderService) SubmitOffer(supplierID, orderID, body string) (*models.Offer, error) {
	if _, err := s.orderRepo.GetByID(orderID); err != nil {
		return nil, err
	}

	offer := &models.Offer{
		ID:      uuid.New().String(),
		OrderID: orderID,
		UserID:  supplierID,
		Body:    body,
	}
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.publish(EventOfferSubmitted, map[string]interface{}{
		"offerID": offer.ID,
		"orderID": orderID,
		"userID":  supplierID,
	})
	return offer, nil
}

// ViewOffers returns the offers against an order, restricted to the order's
// owning factory. Non-owners get the same ErrNotFound as a missing order.
func (s *OrderService) ViewOffers(actorID, orderID string) ([]models.Offer, error) {
	if _, err := s.GetOwnedOrder(actorID, orderID); err != nil {
		return nil, err
	}
	return s.offerRepo.GetByOrderID(orderID)
}

// Stats aggregates order and offer counts for a factory's dashboard.
func (s *OrderService) Stats(factoryID string) (*OrderStats, error) {
	orders, err := s.orderRepo.CountByUserID(factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	offers, err := s.offerRepo.CountForFactory(factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}
	last, err := s.orderRepo.LatestByUserID(factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest order: %w", err)
	}
	return &OrderStats{Orders: orders, OffersReceived: offers, LastOrderAt: last}, nil
}

// publish sends a marketplace event, best effort. A nil publisher means
// messaging is disabled; a publish failure never fails the request.
func (s *OrderService) publish(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish("", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
