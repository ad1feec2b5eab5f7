package models

import "gorm.io/gorm"

// User roles. Factories post sourcing orders, suppliers answer them with
// offers, admins get the read-only listings.
const (
	RoleFactory  = "factory"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// User represents a registered account on the marketplace.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
	Role         string `json:"role" gorm:"type:varchar(16)" validate:"required,oneof=factory supplier admin"`
	Sector       string `json:"sector,omitempty" gorm:"type:varchar(64)" validate:"omitempty,max=64"`
	gorm.Model   // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
