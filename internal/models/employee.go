package models

import "time"

type Employee struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	EmployeeID   string    `gorm:"uniqueIndex;not null" json:"employee_id"`
	Username     string    `gorm:"index;not null" json:"username"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Position     string    `json:"position"`
	Salary       float64   `gorm:"not null;default:0" json:"salary"`
	Role         string    `gorm:"not null;default:employee" json:"role"`
	Type         string    `gorm:"not null;default:Permanent" json:"type"`
	Status       string    `gorm:"not null;default:Active" json:"status"`
	JoinDate     time.Time `json:"join_date"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Department   *string   `json:"department,omitempty"`
	DOB          *string   `json:"dob,omitempty"`
	BankName     *string   `json:"bank_name,omitempty"`
	AccountNo    *string   `json:"account_no,omitempty"`
	IFSC         *string   `json:"ifsc,omitempty"`
	PAN          *string   `json:"pan,omitempty"`
	Gender       *string   `json:"gender,omitempty"`
	Manager      *string   `json:"manager,omitempty"`
	Location     *string   `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	EmployeeTypeInternship = "Internship"
	EmployeeTypePermanent  = "Permanent"
	EmployeeTypeContract   = "Contract"

	EmployeeStatusActive   = "Active"
	EmployeeStatusInactive = "Inactive"
)
