package models

import "time"

// MonthlyPayroll is a saved payroll report for one month. Saving a report for
// a month that already has one replaces it.
type MonthlyPayroll struct {
	ID               int64          `gorm:"primaryKey" json:"id"`
	Month            string         `gorm:"uniqueIndex:idx_payroll_month_year;not null" json:"month"`
	Year             int            `gorm:"uniqueIndex:idx_payroll_month_year;not null" json:"year"`
	TotalEmployees   int            `gorm:"not null" json:"total_employees"`
	TotalDepartments int            `gorm:"not null" json:"total_departments"`
	TotalPayroll     float64        `gorm:"not null" json:"total_payroll"`
	Entries          []PayrollEntry `gorm:"foreignKey:PayrollID;constraint:OnDelete:CASCADE" json:"employees"`
	CreatedAt        time.Time      `json:"created_at"`
}

type PayrollEntry struct {
	ID         int64   `gorm:"primaryKey" json:"-"`
	PayrollID  int64   `gorm:"index;not null" json:"-"`
	Username   string  `gorm:"not null" json:"username"`
	Position   string  `json:"position"`
	Salary     float64 `gorm:"not null" json:"salary"`
	Bonus      float64 `gorm:"not null" json:"bonus"`
	Deductions float64 `gorm:"not null" json:"deductions"`
	NetPay     float64 `gorm:"not null" json:"net_pay"`
}

// PayrollOverview is the live dashboard view computed from current employees.
type PayrollOverview struct {
	TotalEmployees   int     `json:"total_employees"`
	TotalDepartments int     `json:"total_departments"`
	TotalPayroll     float64 `json:"total_payroll"`
}
