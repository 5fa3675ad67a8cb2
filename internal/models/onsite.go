package models

import "time"

type OnsiteEmployee struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `gorm:"not null" json:"role"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Location  string    `gorm:"not null;default:Other" json:"location"`
	LocalTime *string   `json:"local_time,omitempty"`
	Currency  *string   `json:"currency,omitempty"`
	Status    string    `gorm:"not null;default:Active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
