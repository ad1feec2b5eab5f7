package models

import "time"

// Order represents a factory's sourcing request.
type Order struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title        string    `json:"title" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Description  string    `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Sector       string    `json:"sector" gorm:"type:varchar(64);index" validate:"required,max=64"`
	Quantity     int       `json:"quantity" validate:"required,gt=0"`
	DeliveryDate time.Time `json:"delivery_date"`
	UserID       string    `json:"user_id" gorm:"type:varchar(36);index"`
	// Attachment holds the storage name assigned by the attachment store,
	// never the raw client filename.
	Attachment string    `json:"attachment,omitempty" gorm:"type:varchar(255)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
