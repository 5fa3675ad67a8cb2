package models

import "time"

// LoginRecord is an append-only audit row written on every successful login.
type LoginRecord struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"index;not null" json:"username"`
	Email     string    `json:"email"`
	Role      string    `gorm:"index;not null" json:"role"`
	LoginTime time.Time `gorm:"autoCreateTime" json:"login_time"`
}
