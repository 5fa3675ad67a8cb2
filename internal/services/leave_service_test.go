package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type fakeLeaves struct {
	leaves []*models.Leave
	nextID int64
}

func (f *fakeLeaves) Create(_ context.Context, l *models.Leave) (*models.Leave, error) {
	f.nextID++
	l.ID = f.nextID
	l.AppliedOn = time.Now()
	f.leaves = append(f.leaves, l)
	return l, nil
}

func (f *fakeLeaves) GetByID(_ context.Context, id int64) (*models.Leave, error) {
	for _, l := range f.leaves {
		if l.ID == id {
			copied := *l
			return &copied, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeLeaves) ListByEmployee(_ context.Context, employeeName string) ([]models.Leave, error) {
	var out []models.Leave
	for _, l := range f.leaves {
		if l.EmployeeName == employeeName {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaves) ListAll(context.Context) ([]models.Leave, error) {
	out := make([]models.Leave, 0, len(f.leaves))
	for _, l := range f.leaves {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLeaves) UpdateStatus(_ context.Context, id int64, status string) error {
	for _, l := range f.leaves {
		if l.ID == id {
			if l.Status != models.LeaveStatusPending {
				return repo.ErrNotFound
			}
			l.Status = status
			return nil
		}
	}
	return repo.ErrNotFound
}

func leaveDates() (time.Time, time.Time) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 2)
}

func TestApplyLeave(t *testing.T) {
	svc := NewLeaveService(&fakeLeaves{})
	from, to := leaveDates()

	leave, err := svc.Apply(context.Background(), "e1", "sick", from, to, "flu")
	require.NoError(t, err)

	assert.Equal(t, models.LeaveStatusPending, leave.Status)
	assert.Equal(t, "e1", leave.EmployeeName)
}

func TestApplyLeaveValidatesFields(t *testing.T) {
	svc := NewLeaveService(&fakeLeaves{})
	from, to := leaveDates()

	_, err := svc.Apply(context.Background(), "", "sick", from, to, "flu")
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeValidation, ae.Code)

	_, err = svc.Apply(context.Background(), "e1", "sick", to, from, "flu")
	ae = appErr(t, err)
	assert.Equal(t, utils.CodeValidation, ae.Code)
}

func TestApplyLeaveSingleDay(t *testing.T) {
	svc := NewLeaveService(&fakeLeaves{})
	from, _ := leaveDates()

	_, err := svc.Apply(context.Background(), "e1", "casual", from, from, "errand")
	assert.NoError(t, err)
}

func TestDecideApprovesPending(t *testing.T) {
	store := &fakeLeaves{}
	svc := NewLeaveService(store)
	from, to := leaveDates()
	applied, err := svc.Apply(context.Background(), "e1", "sick", from, to, "flu")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), applied.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusApproved, decided.Status)
}

func TestDecideRejectsPending(t *testing.T) {
	store := &fakeLeaves{}
	svc := NewLeaveService(store)
	from, to := leaveDates()
	applied, err := svc.Apply(context.Background(), "e1", "sick", from, to, "flu")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), applied.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusRejected, decided.Status)
}

func TestDecideIsFinal(t *testing.T) {
	store := &fakeLeaves{}
	svc := NewLeaveService(store)
	from, to := leaveDates()
	applied, err := svc.Apply(context.Background(), "e1", "sick", from, to, "flu")
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), applied.ID, true)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), applied.ID, false)
	ae := appErr(t, err)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, utils.CodeConflict, ae.Code)
}

func TestDecideUnknownLeave(t *testing.T) {
	svc := NewLeaveService(&fakeLeaves{})

	_, err := svc.Decide(context.Background(), 42, true)
	ae := appErr(t, err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestListByEmployeeFilters(t *testing.T) {
	store := &fakeLeaves{}
	svc := NewLeaveService(store)
	from, to := leaveDates()
	_, err := svc.Apply(context.Background(), "e1", "sick", from, to, "flu")
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), "e2", "casual", from, to, "errand")
	require.NoError(t, err)

	mine, err := svc.ListByEmployee(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
