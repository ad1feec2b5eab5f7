package services_test

import (
	"testing"
	"time"

	"souq/internal/models"
	"souq/internal/repositories"
	"souq/internal/services"

	"github.com/stretchr/testify/assert"
)

// newOrderService wires an OrderService over the in-memory repositories,
// with messaging disabled.
func newOrderService() (*services.OrderService, *repositories.MockOrderRepository, *repositories.MockOfferRepository) {
	orderRepo := repositories.NewMockOrderRepository()
	offerRepo := repositories.NewMockOfferRepository(orderRepo)
	return services.NewOrderService(orderRepo, offerRepo, nil), orderRepo, offerRepo
}

func seedOrder(t *testing.T, svc *services.OrderService, userID, title string) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(&models.Order{
		Title:        title,
		Description:  "need a bulk quote",
		Sector:       "food",
		Quantity:     100,
		DeliveryDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:       userID,
	})
	assert.NoError(t, err)
	return order
}

func TestOrderService_EditOrderOwnership(t *testing.T) {
	svc, _, _ := newOrderService()
	order := seedOrder(t, svc, "factory-1", "Need boxes")

	update := services.OrderUpdate{
		Title:        "Need more boxes",
		Description:  order.Description,
		Sector:       order.Sector,
		Quantity:     250,
		DeliveryDate: order.DeliveryDate,
	}

	// A different factory cannot edit the order, and the failure is
	// indistinguishable from a missing order.
	_, err := svc.EditOrder("factory-2", order.ID, update)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.EditOrder("factory-2", "no-such-order", update)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The order is unchanged after the rejected edit.
	unchanged, err := svc.GetOwnedOrder("factory-1", order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Need boxes", unchanged.Title)
	assert.Equal(t, 100, unchanged.Quantity)

	// The owner can edit.
	updated, err := svc.EditOrder("factory-1", order.ID, update)
	assert.NoError(t, err)
	assert.Equal(t, "Need more boxes", updated.Title)
	assert.Equal(t, 250, updated.Quantity)
}

func TestOrderService_DeleteOrderOwnership(t *testing.T) {
	svc, _, _ := newOrderService()
	order := seedOrder(t, svc, "factory-1", "Need boxes")

	_, err := svc.DeleteOrder("factory-2", order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Still there for the owner.
	_, err = svc.GetOwnedOrder("factory-1", order.ID)
	assert.NoError(t, err)

	_, err = svc.DeleteOrder("factory-1", order.ID)
	assert.NoError(t, err)

	_, err = svc.GetOwnedOrder("factory-1", order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_SubmitOffer(t *testing.T) {
	svc, _, offerRepo := newOrderService()
	order := seedOrder(t, svc, "factory-1", "Need boxes")

	// An offer against a missing order fails and writes nothing.
	_, err := svc.SubmitOffer("supplier-1", "no-such-order", "We can supply at $2/unit")
	assert.ErrorIs(t, err, services.ErrNotFound)
	count, err := offerRepo.CountForFactory("factory-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	offer, err := svc.SubmitOffer("supplier-1", order.ID, "We can supply at $2/unit")
	assert.NoError(t, err)
	assert.Equal(t, order.ID, offer.OrderID)
	assert.Equal(t, "supplier-1", offer.UserID)
	assert.False(t, offer.CreatedAt.IsZero())
}

func TestOrderService_ViewOffersOwnership(t *testing.T) {
	svc, _, _ := newOrderService()
	order := seedOrder(t, svc, "factory-1", "Need boxes")

	_, err := svc.SubmitOffer("supplier-1", order.ID, "We can supply at $2/unit")
	assert.NoError(t, err)

	// Only the owning factory sees the offers.
	offers, err := svc.ViewOffers("factory-1", order.ID)
	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, "We can supply at $2/unit", offers[0].Body)

	_, err = svc.ViewOffers("factory-2", order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_ListOrdersPagination(t *testing.T) {
	svc, _, _ := newOrderService()
	for i := 0; i < 25; i++ {
		seedOrder(t, svc, "factory-1", "Order")
	}

	// Defaults normalize bad input.
	orders, total, err := svc.ListOrders(0, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, orders, services.DefaultPageSize)

	// Second page carries the remainder.
	orders, total, err = svc.ListOrders(2, services.DefaultPageSize)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, orders, 5)

	// An oversized limit is clamped back to the default.
	orders, _, err = svc.ListOrders(1, services.MaxPageSize+1)
	assert.NoError(t, err)
	assert.Len(t, orders, services.DefaultPageSize)
}

func TestOrderService_Stats(t *testing.T) {
	svc, _, _ := newOrderService()

	// No activity yet: zero counts and no last-order timestamp.
	stats, err := svc.Stats("factory-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.Orders)
	assert.Equal(t, int64(0), stats.OffersReceived)
	assert.Nil(t, stats.LastOrderAt)

	first := seedOrder(t, svc, "factory-1", "First")
	second := seedOrder(t, svc, "factory-1", "Second")
	seedOrder(t, svc, "factory-2", "Someone else's")

	_, err = svc.SubmitOffer("supplier-1", first.ID, "offer one")
	assert.NoError(t, err)
	_, err = svc.SubmitOffer("supplier-2", second.ID, "offer two")
	assert.NoError(t, err)

	stats, err = svc.Stats("factory-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Orders)
	assert.Equal(t, int64(2), stats.OffersReceived)
	assert.NotNil(t, stats.LastOrderAt)
	assert.False(t, stats.LastOrderAt.Before(first.CreatedAt))
}
