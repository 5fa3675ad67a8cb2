package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

// Payroll arithmetic, in one place: bonus is 10% of basic salary and
// deductions are 3%.
const (
	bonusRate     = 0.10
	deductionRate = 0.03
)

type PayrollEmployeeSource interface {
	ListAll(ctx context.Context) ([]models.Employee, error)
	Count(ctx context.Context) (int64, error)
}

type DepartmentCounter interface {
	Count(ctx context.Context) (int64, error)
}

type PayrollStore interface {
	Replace(ctx context.Context, p *models.MonthlyPayroll) error
	GetByMonth(ctx context.Context, month string, year int) (*models.MonthlyPayroll, error)
}

type PayrollService struct {
	employees   PayrollEmployeeSource
	departments DepartmentCounter
	reports     PayrollStore
}

func NewPayrollService(employees PayrollEmployeeSource, departments DepartmentCounter, reports PayrollStore) *PayrollService {
	return &PayrollService{employees: employees, departments: departments, reports: reports}
}

// ComputeEntry derives one employee's payroll line from their basic salary.
func ComputeEntry(e models.Employee) models.PayrollEntry {
	bonus := e.Salary * bonusRate
	deductions := e.Salary * deductionRate
	return models.PayrollEntry{
		Username:   e.Username,
		Position:   e.Position,
		Salary:     e.Salary,
		Bonus:      bonus,
		Deductions: deductions,
		NetPay:     e.Salary + bonus - deductions,
	}
}

// Overview is the live dashboard: current counts plus the total net payroll
// computed from current employee records.
func (s *PayrollService) Overview(ctx context.Context) (*models.PayrollOverview, error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return nil, serverError()
	}
	departmentCount, err := s.departments.Count(ctx)
	if err != nil {
		return nil, serverError()
	}

	var total float64
	for _, e := range employees {
		total += ComputeEntry(e).NetPay
	}

	return &models.PayrollOverview{
		TotalEmployees:   len(employees),
		TotalDepartments: int(departmentCount),
		TotalPayroll:     total,
	}, nil
}

// LiveTotal sums basic salaries only, without bonus or deductions.
func (s *PayrollService) LiveTotal(ctx context.Context) (float64, error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return 0, serverError()
	}
	var total float64
	for _, e := range employees {
		total += e.Salary
	}
	return total, nil
}

// SaveMonthly computes the report for the given month from current employee
// records and stores it, replacing any previous report for that month.
func (s *PayrollService) SaveMonthly(ctx context.Context, month string, year int) (*models.MonthlyPayroll, error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return nil, serverError()
	}
	if len(employees) == 0 {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "No employees to save")
	}

	departmentCount, err := s.departments.Count(ctx)
	if err != nil {
		return nil, serverError()
	}

	report := &models.MonthlyPayroll{
		Month:            month,
		Year:             year,
		TotalEmployees:   len(employees),
		TotalDepartments: int(departmentCount),
	}
	for _, e := range employees {
		entry := ComputeEntry(e)
		report.TotalPayroll += entry.NetPay
		report.Entries = append(report.Entries, entry)
	}

	if err := s.reports.Replace(ctx, report); err != nil {
		return nil, serverError()
	}
	return report, nil
}

func (s *PayrollService) GetMonthly(ctx context.Context, month string, year int) (*models.MonthlyPayroll, error) {
	report, err := s.reports.GetByMonth(ctx, month, year)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "No payroll report for that month")
	}
	if err != nil {
		return nil, serverError()
	}
	return report, nil
}

func serverError() error {
	return utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
}
