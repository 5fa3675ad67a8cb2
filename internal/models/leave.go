package models

import "time"

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

type Leave struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	EmployeeName string    `gorm:"index;not null" json:"employee_name"`
	LeaveType    string    `gorm:"not null" json:"leave_type"`
	FromDate     time.Time `gorm:"not null" json:"from_date"`
	ToDate       time.Time `gorm:"not null" json:"to_date"`
	Reason       string    `gorm:"not null" json:"reason"`
	Status       string    `gorm:"not null;default:pending" json:"status"`
	AppliedOn    time.Time `gorm:"autoCreateTime" json:"applied_on"`
}
