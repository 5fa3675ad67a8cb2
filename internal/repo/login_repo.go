package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MATHANGI2003/pms/internal/models"
)

// LoginRepo is the append-only login audit log.
type LoginRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewLoginRepo(pool *pgxpool.Pool, timeout time.Duration) *LoginRepo {
	return &LoginRepo{pool: pool, timeout: timeout}
}

func (r *LoginRepo) Record(ctx context.Context, username, email, role string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO login_records (username, email, role, login_time)
		VALUES ($1, $2, $3, NOW())
	`, username, email, role)
	if err != nil {
		return fmt.Errorf("insert login record: %w", err)
	}
	return nil
}

func (r *LoginRepo) Recent(ctx context.Context, role string, limit int) ([]models.LoginRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, username, email, role, login_time
		FROM login_records
		WHERE role = $1
		ORDER BY login_time DESC
		LIMIT $2
	`, role, limit)
	if err != nil {
		return nil, fmt.Errorf("list login records: %w", err)
	}
	defer rows.Close()

	var out []models.LoginRecord
	for rows.Next() {
		var rec models.LoginRecord
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Email, &rec.Role, &rec.LoginTime); err != nil {
			return nil, fmt.Errorf("scan login record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list login records: %w", err)
	}
	return out, nil
}
