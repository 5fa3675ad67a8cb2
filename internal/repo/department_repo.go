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

type DepartmentRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewDepartmentRepo(pool *pgxpool.Pool, timeout time.Duration) *DepartmentRepo {
	return &DepartmentRepo{pool: pool, timeout: timeout}
}

func (r *DepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, manager, description, created_at
		FROM departments
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Manager, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return out, nil
}

// ExistsByName matches case-insensitively so "Finance" and "finance" are the
// same department.
func (r *DepartmentRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1))", name)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check department exists: %w", err)
	}
	return exists, nil
}

func (r *DepartmentRepo) Create(ctx context.Context, d *models.Department) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO departments (name, manager, description, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, d.Name, d.Manager, d.Description)

	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert department: %w", err)
	}
	return d, nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DepartmentRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM departments").Scan(&total); err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return total, nil
}

func (r *DepartmentRepo) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, manager, description, created_at
		FROM departments
		WHERE id = $1
	`, id)

	var d models.Department
	err := row.Scan(&d.ID, &d.Name, &d.Manager, &d.Description, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}
