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

type OnsiteStore interface {
	List(ctx context.Context) ([]models.OnsiteEmployee, error)
	ListByLocation(ctx context.Context, location string) ([]models.OnsiteEmployee, error)
	Create(ctx context.Context, e *models.OnsiteEmployee) (*models.OnsiteEmployee, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type OnsiteService struct {
	onsite OnsiteStore
}

func NewOnsiteService(onsite OnsiteStore) *OnsiteService {
	return &OnsiteService{onsite: onsite}
}

func (s *OnsiteService) List(ctx context.Context, location string) ([]models.OnsiteEmployee, error) {
	var (
		employees []models.OnsiteEmployee
		err       error
	)
	if location == "" {
		employees, err = s.onsite.List(ctx)
	} else {
		employees, err = s.onsite.ListByLocation(ctx, location)
	}
	if err != nil {
		return nil, serverError()
	}
	return employees, nil
}

func (s *OnsiteService) Create(ctx context.Context, e *models.OnsiteEmployee) (*models.OnsiteEmployee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	if e.Name == "" || e.Email == "" || e.Role == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Name, role and email required")
	}
	if e.Location == "" {
		e.Location = "Other"
	}
	if e.Status == "" {
		e.Status = "Active"
	}

	created, err := s.onsite.Create(ctx, e)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Onsite employee already exists")
	}
	if err != nil {
		return nil, serverError()
	}
	return created, nil
}

func (s *OnsiteService) DeleteByEmail(ctx context.Context, email string) error {
	err := s.onsite.DeleteByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "Onsite employee not found")
	}
	if err != nil {
		return serverError()
	}
	return nil
}
