package models

import "time"

// RatingMin and RatingMax bound the accepted score range.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is a factory's score of a supplier. Append-only.
type Rating struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SupplierID string    `json:"supplier_id" gorm:"type:varchar(36);index"`
	RaterID    string    `json:"rater_id" gorm:"type:varchar(36)"`
	Score      int       `json:"score" validate:"required,min=1,max=5"`
	CreatedAt  time.Time `json:"created_at"`
}
