package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MATHANGI2003/pms/internal/models"
)

type PayrollRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPayrollRepo(pool *pgxpool.Pool, timeout time.Duration) *PayrollRepo {
	return &PayrollRepo{pool: pool, timeout: timeout}
}

// Replace saves a month's report, removing any previous report for the same
// month and year in the same transaction.
func (r *PayrollRepo) Replace(ctx context.Context, p *models.MonthlyPayroll) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin payroll tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM monthly_payrolls WHERE month = $1 AND year = $2", p.Month, p.Year); err != nil {
		return fmt.Errorf("delete previous payroll: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO monthly_payrolls (month, year, total_employees, total_departments, total_payroll, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, p.Month, p.Year, p.TotalEmployees, p.TotalDepartments, p.TotalPayroll)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert payroll: %w", err)
	}

	for i := range p.Entries {
		entry := &p.Entries[i]
		entry.PayrollID = p.ID
		row := tx.QueryRow(ctx, `
			INSERT INTO payroll_entries (payroll_id, username, position, salary, bonus, deductions, net_pay)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, entry.PayrollID, entry.Username, entry.Position, entry.Salary, entry.Bonus, entry.Deductions, entry.NetPay)
		if err := row.Scan(&entry.ID); err != nil {
			return fmt.Errorf("insert payroll entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit payroll tx: %w", err)
	}
	return nil
}

func (r *PayrollRepo) GetByMonth(ctx context.Context, month string, year int) (*models.MonthlyPayroll, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, month, year, total_employees, total_departments, total_payroll, created_at
		FROM monthly_payrolls
		WHERE month = $1 AND year = $2
	`, month, year)

	var p models.MonthlyPayroll
	err := row.Scan(&p.ID, &p.Month, &p.Year, &p.TotalEmployees, &p.TotalDepartments, &p.TotalPayroll, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payroll: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, payroll_id, username, position, salary, bonus, deductions, net_pay
		FROM payroll_entries
		WHERE payroll_id = $1
		ORDER BY username
	`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list payroll entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.PayrollEntry
		err := rows.Scan(&e.ID, &e.PayrollID, &e.Username, &e.Position, &e.Salary, &e.Bonus, &e.Deductions, &e.NetPay)
		if err != nil {
			return nil, fmt.Errorf("scan payroll entry: %w", err)
		}
		p.Entries = append(p.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payroll entries: %w", err)
	}
	return &p, nil
}
