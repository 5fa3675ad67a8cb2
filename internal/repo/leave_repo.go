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

type LeaveRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewLeaveRepo(pool *pgxpool.Pool, timeout time.Duration) *LeaveRepo {
	return &LeaveRepo{pool: pool, timeout: timeout}
}

func (r *LeaveRepo) Create(ctx context.Context, l *models.Leave) (*models.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO leaves (employee_name, leave_type, from_date, to_date, reason, status, applied_on)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, applied_on
	`, l.EmployeeName, l.LeaveType, l.FromDate, l.ToDate, l.Reason, l.Status)

	if err := row.Scan(&l.ID, &l.AppliedOn); err != nil {
		return nil, fmt.Errorf("insert leave: %w", err)
	}
	return l, nil
}

func (r *LeaveRepo) GetByID(ctx context.Context, id int64) (*models.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, employee_name, leave_type, from_date, to_date, reason, status, applied_on
		FROM leaves
		WHERE id = $1
	`, id)

	var l models.Leave
	err := row.Scan(&l.ID, &l.EmployeeName, &l.LeaveType, &l.FromDate, &l.ToDate, &l.Reason, &l.Status, &l.AppliedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get leave: %w", err)
	}
	return &l, nil
}

func (r *LeaveRepo) ListByEmployee(ctx context.Context, employeeName string) ([]models.Leave, error) {
	return r.list(ctx, "WHERE employee_name = $1", employeeName)
}

func (r *LeaveRepo) ListAll(ctx context.Context) ([]models.Leave, error) {
	return r.list(ctx, "")
}

func (r *LeaveRepo) list(ctx context.Context, where string, args ...any) ([]models.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, employee_name, leave_type, from_date, to_date, reason, status, applied_on
		FROM leaves `+where+`
		ORDER BY applied_on DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	var out []models.Leave
	for rows.Next() {
		var l models.Leave
		err := rows.Scan(&l.ID, &l.EmployeeName, &l.LeaveType, &l.FromDate, &l.ToDate, &l.Reason, &l.Status, &l.AppliedOn)
		if err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return out, nil
}

// UpdateStatus moves a pending request to approved or rejected. The status
// guard keeps decided requests immutable.
func (r *LeaveRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE leaves
		SET status = $1
		WHERE id = $2 AND status = $3
	`, status, id, models.LeaveStatusPending)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
