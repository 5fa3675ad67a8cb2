package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type DepartmentStore interface {
	List(ctx context.Context) ([]models.Department, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, d *models.Department) (*models.Department, error)
	Delete(ctx context.Context, id int64) error
}

type DepartmentService struct {
	departments DepartmentStore
}

func NewDepartmentService(departments DepartmentStore) *DepartmentService {
	return &DepartmentService{departments: departments}
}

func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, serverError()
	}
	return departments, nil
}

func (s *DepartmentService) Get(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departments.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "Department not found")
	}
	if err != nil {
		return nil, serverError()
	}
	return department, nil
}

func (s *DepartmentService) Create(ctx context.Context, name, manager string, description *string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	manager = strings.TrimSpace(manager)
	if name == "" || manager == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Name and manager required")
	}

	exists, err := s.departments.ExistsByName(ctx, name)
	if err != nil {
		return nil, serverError()
	}
	if exists {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Department already exists")
	}

	department := &models.Department{
		Name:        name,
		Manager:     manager,
		Description: description,
	}
	created, err := s.departments.Create(ctx, department)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Department already exists")
	}
	if err != nil {
		return nil, serverError()
	}
	return created, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	err := s.departments.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "Department not found")
	}
	if err != nil {
		return serverError()
	}
	return nil
}
