package repositories

import (
	"fmt"

	"souq/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository defines the interface for contact-message data access.
type ContactRepository interface {
	Create(msg *models.ContactMessage) error
	GetAll() ([]models.ContactMessage, error)
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create appends a contact message.
func (r *GORMContactRepository) Create(msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// GetAll retrieves every contact message, newest first. Admin listing only.
func (r *GORMContactRepository) GetAll() ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	if err := r.db.Order("created_at desc").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}
