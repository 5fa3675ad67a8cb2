package services

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type fakeEmployeeStore struct {
	employees []*models.Employee
	nextSeq   int
}

func (f *fakeEmployeeStore) Create(_ context.Context, e *models.Employee) (*models.Employee, error) {
	for _, existing := range f.employees {
		if existing.Email == e.Email || existing.EmployeeID == e.EmployeeID {
			return nil, repo.ErrDuplicate
		}
	}
	e.ID = int64(len(f.employees) + 1)
	f.employees = append(f.employees, e)
	return e, nil
}

func (f *fakeEmployeeStore) GetByID(_ context.Context, id int64) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeEmployeeStore) GetByUsername(_ context.Context, username string) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.Username == username {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeEmployeeStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeStore) NextEmployeeID(context.Context) (string, error) {
	f.nextSeq++
	return "EMP" + strconv.Itoa(1000+f.nextSeq), nil
}

func (f *fakeEmployeeStore) List(_ context.Context, page, perPage int) ([]models.Employee, int64, error) {
	out := make([]models.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, updated *models.Employee) error {
	for i, e := range f.employees {
		if e.ID == updated.ID {
			copied := *updated
			f.employees[i] = &copied
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeEmployeeStore) Delete(_ context.Context, id int64) error {
	for i, e := range f.employees {
		if e.ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func TestCreateEmployeeDefaults(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)

	created, err := svc.Create(context.Background(), CreateEmployeeInput{
		Name:   "New Hire",
		Email:  "new@corp.test",
		Salary: 40000,
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP1001", created.EmployeeID)
	assert.Equal(t, "New Hire", created.Username)
	assert.Equal(t, models.EmployeeTypePermanent, created.Type)
	assert.Equal(t, models.EmployeeStatusActive, created.Status)
	assert.Equal(t, models.RoleEmployee, created.Role)
	assert.True(t, utils.CheckPassword(created.PasswordHash, "emp123"))
}

func TestCreateEmployeeSequentialIDs(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)

	first, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "A", Email: "a@corp.test"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "B", Email: "b@corp.test"})
	require.NoError(t, err)

	assert.Equal(t, "EMP1001", first.EmployeeID)
	assert.Equal(t, "EMP1002", second.EmployeeID)
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)

	_, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "A", Email: "a@corp.test"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateEmployeeInput{Name: "B", Email: "a@corp.test"})
	ae := appErr(t, err)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, utils.CodeConflict, ae.Code)
}

func TestCreateEmployeeRequiresEmail(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeStore{})

	_, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "A"})
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeValidation, ae.Code)
}

func TestUpdateEmployeeAppliesOnlyProvidedFields(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)
	created, err := svc.Create(context.Background(), CreateEmployeeInput{
		Name:     "A",
		Email:    "a@corp.test",
		Position: "Engineer",
		Salary:   40000,
	})
	require.NoError(t, err)

	newSalary := 45000.0
	phone := "555-0100"
	updated, err := svc.Update(context.Background(), created.ID, UpdateEmployeeInput{
		Salary: &newSalary,
		Phone:  &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "Engineer", updated.Position)
	assert.Equal(t, "a@corp.test", updated.Email)
	assert.InDelta(t, 45000, updated.Salary, 0.001)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555-0100", *updated.Phone)
}

func TestUpdateEmployeeRotatesPassword(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)
	created, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "A", Email: "a@corp.test"})
	require.NoError(t, err)

	newPassword := "Rotated1!"
	updated, err := svc.Update(context.Background(), created.ID, UpdateEmployeeInput{Password: &newPassword})
	require.NoError(t, err)

	assert.True(t, utils.CheckPassword(updated.PasswordHash, "Rotated1!"))
	assert.False(t, utils.CheckPassword(updated.PasswordHash, "emp123"))
}

func TestUpdateEmployeeRejectsWeakPassword(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)
	created, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "A", Email: "a@corp.test"})
	require.NoError(t, err)
	originalHash := store.employees[0].PasswordHash

	weak := "short"
	_, err = svc.Update(context.Background(), created.ID, UpdateEmployeeInput{Password: &weak})
	ae := appErr(t, err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, utils.CodeWeakPassword, ae.Code)
	assert.Equal(t, originalHash, store.employees[0].PasswordHash)
}

func TestUpdateUnknownEmployee(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeStore{})

	name := "Ghost"
	_, err := svc.Update(context.Background(), 99, UpdateEmployeeInput{Name: &name})
	ae := appErr(t, err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestDeleteEmployee(t *testing.T) {
	store := &fakeEmployeeStore{}
	svc := NewEmployeeService(store)
	created, err := svc.Create(context.Background(), CreateEmployeeInput{Name: "A", Email: "a@corp.test"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, store.employees)

	err = svc.Delete(context.Background(), created.ID)
	ae := appErr(t, err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}
