package services_test

import (
	"fmt"
	"testing"

	"souq/internal/models"
	"souq/internal/repositories"
	"souq/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRatingRepository is a mock implementation of
// repositories.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) AverageForSupplier(supplierID string) (float64, int64, error) {
	args := m.Called(supplierID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func notFoundErr(id string) error {
	return fmt.Errorf("user with ID %s: %w", id, services.ErrNotFound)
}

func TestProfileService_SupplierProfileNoRatings(t *testing.T) {
	userRepo := new(MockUserRepository)
	ratingRepo := new(MockRatingRepository)
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewProfileService(userRepo, orderRepo, ratingRepo, nil)

	supplier := &models.User{ID: "supplier-1", Name: "Bolt Co", Role: models.RoleSupplier}

	// Zero ratings renders as a nil average, not a zero score.
	userRepo.On("GetByID", supplier.ID).Return(supplier, nil).Once()
	ratingRepo.On("AverageForSupplier", supplier.ID).Return(float64(0), int64(0), nil).Once()

	profile, err := svc.GetSupplierProfile(supplier.ID)
	assert.NoError(t, err)
	assert.Nil(t, profile.AverageRating)
	assert.Equal(t, int64(0), profile.RatingCount)

	// With ratings the mean comes through.
	userRepo.On("GetByID", supplier.ID).Return(supplier, nil).Once()
	ratingRepo.On("AverageForSupplier", supplier.ID).Return(4.5, int64(2), nil).Once()

	profile, err = svc.GetSupplierProfile(supplier.ID)
	assert.NoError(t, err)
	assert.NotNil(t, profile.AverageRating)
	assert.Equal(t, 4.5, *profile.AverageRating)
	assert.Equal(t, int64(2), profile.RatingCount)

	userRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestProfileService_SupplierProfileWrongRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	ratingRepo := new(MockRatingRepository)
	svc := services.NewProfileService(userRepo, repositories.NewMockOrderRepository(), ratingRepo, nil)

	// A factory account is not exposed through the supplier endpoint.
	factory := &models.User{ID: "factory-1", Role: models.RoleFactory}
	userRepo.On("GetByID", factory.ID).Return(factory, nil).Once()

	_, err := svc.GetSupplierProfile(factory.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	userRepo.AssertExpectations(t)
}

func TestProfileService_RateSupplier(t *testing.T) {
	userRepo := new(MockUserRepository)
	ratingRepo := new(MockRatingRepository)
	svc := services.NewProfileService(userRepo, repositories.NewMockOrderRepository(), ratingRepo, nil)

	supplier := &models.User{ID: "supplier-1", Role: models.RoleSupplier}

	// Out-of-range scores are rejected before touching the store.
	_, err := svc.RateSupplier("factory-1", supplier.ID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidRating)
	_, err = svc.RateSupplier("factory-1", supplier.ID, 6)
	assert.ErrorIs(t, err, services.ErrInvalidRating)

	// Unknown supplier
	userRepo.On("GetByID", "no-such-user").Return(nil, notFoundErr("no-such-user")).Once()
	_, err = svc.RateSupplier("factory-1", "no-such-user", 3)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Valid rating is appended.
	userRepo.On("GetByID", supplier.ID).Return(supplier, nil).Once()
	ratingRepo.On("Create", mock.MatchedBy(func(r *models.Rating) bool {
		return r.SupplierID == supplier.ID && r.RaterID == "factory-1" && r.Score == 3
	})).Return(nil).Once()

	rating, err := svc.RateSupplier("factory-1", supplier.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, rating.Score)

	userRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestProfileService_FactoryProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	ratingRepo := new(MockRatingRepository)
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewProfileService(userRepo, orderRepo, ratingRepo, nil)

	factory := &models.User{ID: "factory-1", Name: "Acme", Role: models.RoleFactory, Sector: "food"}
	assert.NoError(t, orderRepo.Create(&models.Order{
		Title: "Need boxes", Sector: "food", Quantity: 100, UserID: factory.ID,
	}))

	userRepo.On("GetByID", factory.ID).Return(factory, nil).Once()
	profile, err := svc.GetFactoryProfile(factory.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Acme", profile.User.Name)
	assert.Len(t, profile.Orders, 1)
	userRepo.AssertExpectations(t)
}
