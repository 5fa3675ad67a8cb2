package models

import "time"

// Admin is a singleton: exactly one row, auto-provisioned on first access.
type Admin struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:admin" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	AdminUsername = "admin"

	// DefaultAdminPassword is the initial password of the auto-provisioned
	// admin singleton. It stops working the moment the admin rotates it.
	DefaultAdminPassword = "admin123"
)
