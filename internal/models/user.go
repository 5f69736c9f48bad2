package models

import "gorm.io/gorm"

// User represents a registered user of the TIL service.
// Hash and Salt are credential material and must never be serialized;
// SanitizeUser strips them (and any token claims) before a user leaves
// a service.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Hash     string `json:"-" gorm:"type:varchar(255)"`
	Salt     string `json:"-" gorm:"type:varchar(64)"`

	// Token claims carried on the authenticated identity built by the
	// JWT middleware. Not persisted.
	IssuedAt  int64 `json:"iat,omitempty" gorm:"-"`
	ExpiresAt int64 `json:"exp,omitempty" gorm:"-"`

	gorm.Model `json:"-"` // CreatedAt, UpdatedAt, DeletedAt
}

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
