package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	NextEmployeeID(ctx context.Context) (string, error)
	List(ctx context.Context, page, perPage int) ([]models.Employee, int64, error)
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeService struct {
	employees EmployeeStore
	now       func() time.Time
}

// CreateEmployeeInput is the administrative creation form. EmployeeID and
// Password are optional: a blank ID is generated, a blank password falls back
// to the rotatable default.
type CreateEmployeeInput struct {
	EmployeeID string
	Username   string
	Name       string
	Email      string
	Password   string
	Position   string
	Salary     float64
	Type       string
	Status     string
	JoinDate   *time.Time
	Phone      *string
	Address    *string
	Department *string
}

// UpdateEmployeeInput carries only the fields the caller wants to change.
type UpdateEmployeeInput struct {
	EmployeeID *string
	Username   *string
	Name       *string
	Email      *string
	Password   *string
	Position   *string
	Salary     *float64
	Type       *string
	Status     *string
	JoinDate   *time.Time
	Phone      *string
	Address    *string
	Department *string
	DOB        *string
	BankName   *string
	AccountNo  *string
	IFSC       *string
	PAN        *string
	Gender     *string
	Manager    *string
	Location   *string
}

func NewEmployeeService(employees EmployeeStore) *EmployeeService {
	return &EmployeeService{employees: employees, now: time.Now}
}

func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Email required")
	}

	exists, err := s.employees.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, serverError()
	}
	if exists {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Email already exists")
	}

	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		employeeID, err = s.employees.NextEmployeeID(ctx)
		if err != nil {
			return nil, serverError()
		}
	}

	password := in.Password
	if password == "" {
		password = defaultEmployeePassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, serverError()
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = in.Name
	}
	if username == "" {
		username = usernameFromEmail(in.Email)
	}

	employee := &models.Employee{
		EmployeeID:   employeeID,
		Username:     username,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Position:     in.Position,
		Salary:       in.Salary,
		Role:         models.RoleEmployee,
		Type:         orDefault(in.Type, models.EmployeeTypePermanent),
		Status:       orDefault(in.Status, models.EmployeeStatusActive),
		JoinDate:     s.now(),
		Phone:        in.Phone,
		Address:      in.Address,
		Department:   in.Department,
	}
	if in.JoinDate != nil {
		employee.JoinDate = *in.JoinDate
	}

	created, err := s.employees.Create(ctx, employee)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Employee ID or email already exists")
	}
	if err != nil {
		return nil, serverError()
	}
	return created, nil
}

// NextID previews the next sequential employee ID without reserving it.
func (s *EmployeeService) NextID(ctx context.Context) (string, error) {
	next, err := s.employees.NextEmployeeID(ctx)
	if err != nil {
		return "", serverError()
	}
	return next, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, employeeNotFound()
	}
	if err != nil {
		return nil, serverError()
	}
	return employee, nil
}

func (s *EmployeeService) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	employee, err := s.employees.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, employeeNotFound()
	}
	if err != nil {
		return nil, serverError()
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context, page, perPage int) ([]models.Employee, int64, error) {
	employees, total, err := s.employees.List(ctx, page, perPage)
	if err != nil {
		return nil, 0, serverError()
	}
	return employees, total, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, in UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, employeeNotFound()
	}
	if err != nil {
		return nil, serverError()
	}

	if in.Password != nil && *in.Password != "" {
		// Same policy as signup and reset; a rotation cannot weaken the account.
		if !utils.ValidPassword(*in.Password) {
			return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeWeakPassword, weakPasswordMessage)
		}
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, serverError()
		}
		employee.PasswordHash = hash
	}

	applyString(&employee.EmployeeID, in.EmployeeID)
	applyString(&employee.Username, in.Username)
	applyString(&employee.Name, in.Name)
	applyString(&employee.Email, in.Email)
	applyString(&employee.Position, in.Position)
	applyString(&employee.Type, in.Type)
	applyString(&employee.Status, in.Status)
	if in.Salary != nil {
		employee.Salary = *in.Salary
	}
	if in.JoinDate != nil {
		employee.JoinDate = *in.JoinDate
	}
	applyOptional(&employee.Phone, in.Phone)
	applyOptional(&employee.Address, in.Address)
	applyOptional(&employee.Department, in.Department)
	applyOptional(&employee.DOB, in.DOB)
	applyOptional(&employee.BankName, in.BankName)
	applyOptional(&employee.AccountNo, in.AccountNo)
	applyOptional(&employee.IFSC, in.IFSC)
	applyOptional(&employee.PAN, in.PAN)
	applyOptional(&employee.Gender, in.Gender)
	applyOptional(&employee.Manager, in.Manager)
	applyOptional(&employee.Location, in.Location)

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Employee ID or email already exists")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, employeeNotFound()
		}
		return nil, serverError()
	}
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	err := s.employees.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return employeeNotFound()
	}
	if err != nil {
		return serverError()
	}
	return nil
}

func employeeNotFound() error {
	return utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "Employee not found")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func applyString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func applyOptional(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}
