package models

import "time"

// Offer represents a supplier's response to an order. Offers are append-only:
// once submitted they are never updated or deleted.
type Offer struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(36);index"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index"`
	Body      string    `json:"body" gorm:"type:text" validate:"required,min=1,max=2000"`
	CreatedAt time.Time `json:"created_at"`
}
