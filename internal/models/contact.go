package models

import "time"

// ContactMessage is a message left through the public contact form. It is
// append-only and only ever read back from the admin listing.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Message   string    `json:"message" gorm:"type:text" validate:"required,min=1,max=2000"`
	CreatedAt time.Time `json:"created_at"`
}
