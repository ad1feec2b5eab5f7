package services

import (
	"encoding/json"
	"fmt"
	"log"

	"souq/internal/models"
	"souq/internal/repositories"

	"github.com/google/uuid"
)

// FactoryProfile is the public view of a factory account with its orders.
type FactoryProfile struct {
	User   *models.User   `json:"user"`
	Orders []models.Order `json:"orders"`
}

// SupplierProfile is the public view of a supplier account with its rating
// aggregate. AverageRating is nil when the supplier has never been rated, so
// the client renders "no ratings" instead of a bogus zero.
type SupplierProfile struct {
	User          *models.User `json:"user"`
	AverageRating *float64     `json:"average_rating"`
	RatingCount   int64        `json:"rating_count"`
}

// ProfileService handles public profiles, sector browsing, and ratings.
type ProfileService struct {
	userRepo   repositories.UserRepository
	orderRepo  repositories.OrderRepository
	ratingRepo repositories.RatingRepository
	publisher  EventPublisher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, orderRepo repositories.OrderRepository, ratingRepo repositories.RatingRepository, publisher EventPublisher) *ProfileService {
	return &ProfileService{
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		ratingRepo: ratingRepo,
		publisher:  publisher,
	}
}

// GetFactoryProfile returns a factory's public info plus its orders.
// Non-factory accounts are reported as not found rather than exposed.
func (s *ProfileService) GetFactoryProfile(userID string) (*FactoryProfile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleFactory {
		return nil, fmt.Errorf("factory %s: %w", userID, ErrNotFound)
	}

	orders, err := s.orderRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for factory %s: %w", userID, err)
	}
	return &FactoryProfile{User: user, Orders: orders}, nil
}

// GetSupplierProfile returns a supplier's public info plus the mean of its
// ratings.
func (s *ProfileService) GetSupplierProfile(supplierID string) (*SupplierProfile, error) {
	user, err := s.userRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleSupplier {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, ErrNotFound)
	}

	avg, count, err := s.ratingRepo.AverageForSupplier(supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for supplier %s: %w", supplierID, err)
	}

	profile := &SupplierProfile{User: user, RatingCount: count}
	if count > 0 {
		profile.AverageRating = &avg
	}
	return profile, nil
}

// RateSupplier appends a factory's rating of a supplier. The score must be
// within [RatingMin, RatingMax] and the target must be an existing supplier.
func (s *ProfileService) RateSupplier(raterID, supplierID string, score int) (*models.Rating, error) {
	if score < models.RatingMin || score > models.RatingMax {
		return nil, fmt.Errorf("score %d: %w", score, ErrInvalidRating)
	}

	supplier, err := s.userRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier.Role != models.RoleSupplier {
		return nil, fmt.Errorf("supplier %s: %w", supplierID, ErrNotFound)
	}

	rating := &models.Rating{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		RaterID:    raterID,
		Score:      score,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	if s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"supplierID": supplierID,
			"raterID":    raterID,
			"score":      score,
		})
		if err == nil {
			if err := s.publisher.Publish("", EventSupplierRated, body); err != nil {
				log.Printf("Warning: failed to publish %s event: %v", EventSupplierRated, err)
			}
		}
	}
	return rating, nil
}

// GetFactoriesBySector lists factory accounts registered in a sector.
func (s *ProfileService) GetFactoriesBySector(sector string) ([]models.User, error) {
	return s.userRepo.GetFactoriesBySector(sector)
}
