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

type LeaveStore interface {
	Create(ctx context.Context, l *models.Leave) (*models.Leave, error)
	GetByID(ctx context.Context, id int64) (*models.Leave, error)
	ListByEmployee(ctx context.Context, employeeName string) ([]models.Leave, error)
	ListAll(ctx context.Context) ([]models.Leave, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type LeaveService struct {
	leaves LeaveStore
}

func NewLeaveService(leaves LeaveStore) *LeaveService {
	return &LeaveService{leaves: leaves}
}

func (s *LeaveService) Apply(ctx context.Context, employeeName, leaveType string, from, to time.Time, reason string) (*models.Leave, error) {
	employeeName = strings.TrimSpace(employeeName)
	if employeeName == "" || leaveType == "" || reason == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Missing required fields")
	}
	if to.Before(from) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Leave end date must not be before start date")
	}

	leave := &models.Leave{
		EmployeeName: employeeName,
		LeaveType:    leaveType,
		FromDate:     from,
		ToDate:       to,
		Reason:       reason,
		Status:       models.LeaveStatusPending,
	}

	created, err := s.leaves.Create(ctx, leave)
	if err != nil {
		return nil, serverError()
	}
	return created, nil
}

func (s *LeaveService) ListByEmployee(ctx context.Context, employeeName string) ([]models.Leave, error) {
	leaves, err := s.leaves.ListByEmployee(ctx, employeeName)
	if err != nil {
		return nil, serverError()
	}
	return leaves, nil
}

func (s *LeaveService) ListAll(ctx context.Context) ([]models.Leave, error) {
	leaves, err := s.leaves.ListAll(ctx)
	if err != nil {
		return nil, serverError()
	}
	return leaves, nil
}

// Decide approves or rejects a pending request. Decided requests are final.
func (s *LeaveService) Decide(ctx context.Context, id int64, approve bool) (*models.Leave, error) {
	leave, err := s.leaves.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "Leave request not found")
	}
	if err != nil {
		return nil, serverError()
	}
	if leave.Status != models.LeaveStatusPending {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Leave request already decided")
	}

	status := models.LeaveStatusRejected
	if approve {
		status = models.LeaveStatusApproved
	}

	if err := s.leaves.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Leave request already decided")
		}
		return nil, serverError()
	}

	leave.Status = status
	return leave, nil
}
