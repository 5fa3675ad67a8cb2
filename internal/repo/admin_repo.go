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

type AdminRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewAdminRepo(pool *pgxpool.Pool, timeout time.Duration) *AdminRepo {
	return &AdminRepo{pool: pool, timeout: timeout}
}

// Get returns the admin singleton.
func (r *AdminRepo) Get(ctx context.Context) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM admins
		WHERE username = $1
	`, models.AdminUsername)

	var admin models.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepo) Create(ctx context.Context, email, passwordHash string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO admins (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, models.AdminUsername, email, passwordHash, models.RoleAdmin)

	admin := models.Admin{
		Username:     models.AdminUsername,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := row.Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepo) UpdatePassword(ctx context.Context, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE admins
		SET password_hash = $1, updated_at = NOW()
		WHERE username = $2
	`, passwordHash, models.AdminUsername)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
