package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type fakePayrollEmployees struct {
	employees []models.Employee
}

func (f *fakePayrollEmployees) ListAll(context.Context) ([]models.Employee, error) {
	return f.employees, nil
}

func (f *fakePayrollEmployees) Count(context.Context) (int64, error) {
	return int64(len(f.employees)), nil
}

type fakeDepartmentCounter struct {
	count int64
}

func (f *fakeDepartmentCounter) Count(context.Context) (int64, error) {
	return f.count, nil
}

type fakePayrollStore struct {
	saved map[string]*models.MonthlyPayroll
}

func payrollKey(month string, year int) string {
	return fmt.Sprintf("%s/%d", month, year)
}

func (f *fakePayrollStore) Replace(_ context.Context, p *models.MonthlyPayroll) error {
	if f.saved == nil {
		f.saved = make(map[string]*models.MonthlyPayroll)
	}
	f.saved[payrollKey(p.Month, p.Year)] = p
	return nil
}

func (f *fakePayrollStore) GetByMonth(_ context.Context, month string, year int) (*models.MonthlyPayroll, error) {
	report, ok := f.saved[payrollKey(month, year)]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return report, nil
}

func newPayrollHarness(employees ...models.Employee) (*PayrollService, *fakePayrollStore) {
	store := &fakePayrollStore{}
	svc := NewPayrollService(
		&fakePayrollEmployees{employees: employees},
		&fakeDepartmentCounter{count: 2},
		store,
	)
	return svc, store
}

func TestComputeEntry(t *testing.T) {
	entry := ComputeEntry(models.Employee{Username: "e1", Position: "Engineer", Salary: 50000})

	assert.InDelta(t, 5000, entry.Bonus, 0.001)
	assert.InDelta(t, 1500, entry.Deductions, 0.001)
	assert.InDelta(t, 53500, entry.NetPay, 0.001)
}

func TestComputeEntryZeroSalary(t *testing.T) {
	entry := ComputeEntry(models.Employee{Username: "intern"})

	assert.Zero(t, entry.Bonus)
	assert.Zero(t, entry.Deductions)
	assert.Zero(t, entry.NetPay)
}

func TestOverviewTotals(t *testing.T) {
	svc, _ := newPayrollHarness(
		models.Employee{Username: "e1", Salary: 50000},
		models.Employee{Username: "e2", Salary: 30000},
	)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, overview.TotalEmployees)
	assert.Equal(t, 2, overview.TotalDepartments)
	assert.InDelta(t, 80000*1.07, overview.TotalPayroll, 0.001)
}

func TestLiveTotalSumsBasicSalariesOnly(t *testing.T) {
	svc, _ := newPayrollHarness(
		models.Employee{Username: "e1", Salary: 50000},
		models.Employee{Username: "e2", Salary: 30000},
	)

	total, err := svc.LiveTotal(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 80000, total, 0.001)
}

func TestSaveMonthlySnapshotsCurrentRecords(t *testing.T) {
	svc, store := newPayrollHarness(
		models.Employee{Username: "e1", Position: "Engineer", Salary: 50000},
	)

	report, err := svc.SaveMonthly(context.Background(), "March", 2024)
	require.NoError(t, err)

	assert.Equal(t, "March", report.Month)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 1, report.TotalEmployees)
	require.Len(t, report.Entries, 1)
	assert.InDelta(t, 53500, report.Entries[0].NetPay, 0.001)
	assert.Len(t, store.saved, 1)
}

func TestSaveMonthlyWithoutEmployees(t *testing.T) {
	svc, _ := newPayrollHarness()

	_, err := svc.SaveMonthly(context.Background(), "March", 2024)
	ae := appErr(t, err)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, utils.CodeValidation, ae.Code)
}

func TestSaveMonthlyReplacesPreviousReport(t *testing.T) {
	svc, store := newPayrollHarness(
		models.Employee{Username: "e1", Salary: 50000},
	)

	_, err := svc.SaveMonthly(context.Background(), "March", 2024)
	require.NoError(t, err)
	second, err := svc.SaveMonthly(context.Background(), "March", 2024)
	require.NoError(t, err)

	assert.Len(t, store.saved, 1)
	got, err := svc.GetMonthly(context.Background(), "March", 2024)
	require.NoError(t, err)
	assert.Equal(t, second.TotalPayroll, got.TotalPayroll)
}

func TestGetMonthlyMissingReport(t *testing.T) {
	svc, _ := newPayrollHarness(models.Employee{Username: "e1", Salary: 50000})

	_, err := svc.GetMonthly(context.Background(), "January", 2024)
	ae := appErr(t, err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestExportMonthlyXLSX(t *testing.T) {
	svc, _ := newPayrollHarness(
		models.Employee{Username: "e1", Position: "Engineer", Salary: 50000},
	)

	_, err := svc.SaveMonthly(context.Background(), "March", 2024)
	require.NoError(t, err)

	buf, err := svc.ExportMonthlyXLSX(context.Background(), "March", 2024)
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}

func TestExportMonthlyXLSXMissingReport(t *testing.T) {
	svc, _ := newPayrollHarness(models.Employee{Username: "e1", Salary: 50000})

	_, err := svc.ExportMonthlyXLSX(context.Background(), "January", 2024)
	ae := appErr(t, err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}
