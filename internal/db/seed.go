package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/MATHANGI2003/pms/internal/models"
)

// EnsureAdmin provisions the admin singleton if it is absent. The admin email
// is fixed by configuration, not chosen by callers.
func EnsureAdmin(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, adminEmail string) error {
	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	row := pool.QueryRow(ctxCheck, "SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)", models.AdminUsername)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(models.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	ctxInsert, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err = pool.Exec(ctxInsert, `
		INSERT INTO admins (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, models.AdminUsername, adminEmail, string(hash), models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
