package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MATHANGI2003/pms/internal/models"
)

type OnsiteRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewOnsiteRepo(pool *pgxpool.Pool, timeout time.Duration) *OnsiteRepo {
	return &OnsiteRepo{pool: pool, timeout: timeout}
}

func (r *OnsiteRepo) List(ctx context.Context) ([]models.OnsiteEmployee, error) {
	return r.list(ctx, "")
}

func (r *OnsiteRepo) ListByLocation(ctx context.Context, location string) ([]models.OnsiteEmployee, error) {
	return r.list(ctx, "WHERE location = $1", location)
}

func (r *OnsiteRepo) list(ctx context.Context, where string, args ...any) ([]models.OnsiteEmployee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, role, email, location, local_time, currency, status, created_at
		FROM onsite_employees `+where+`
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list onsite employees: %w", err)
	}
	defer rows.Close()

	var out []models.OnsiteEmployee
	for rows.Next() {
		var e models.OnsiteEmployee
		err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Email, &e.Location, &e.LocalTime, &e.Currency, &e.Status, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan onsite employee: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list onsite employees: %w", err)
	}
	return out, nil
}

func (r *OnsiteRepo) Create(ctx context.Context, e *models.OnsiteEmployee) (*models.OnsiteEmployee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO onsite_employees (name, role, email, location, local_time, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`, e.Name, e.Role, e.Email, e.Location, e.LocalTime, e.Currency, e.Status)

	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert onsite employee: %w", err)
	}
	return e, nil
}

func (r *OnsiteRepo) DeleteByEmail(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM onsite_employees WHERE email = $1", email)
	if err != nil {
		return fmt.Errorf("delete onsite employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
