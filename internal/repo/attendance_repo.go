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

type AttendanceRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewAttendanceRepo(pool *pgxpool.Pool, timeout time.Duration) *AttendanceRepo {
	return &AttendanceRepo{pool: pool, timeout: timeout}
}

func (r *AttendanceRepo) GetByUsernameDate(ctx context.Context, username, date string) (*models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, date, clock_in, clock_out, total_hours, status, created_at
		FROM attendance_records
		WHERE username = $1 AND date = $2
	`, username, date)

	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.Username, &rec.Date, &rec.ClockIn, &rec.ClockOut,
		&rec.TotalHours, &rec.Status, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance record: %w", err)
	}
	return &rec, nil
}

// Create inserts a new day session. The composite unique index on
// (username, date) is the authoritative one-session-per-day guard; a lost
// race surfaces as ErrDuplicate.
func (r *AttendanceRepo) Create(ctx context.Context, rec *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO attendance_records (username, date, clock_in, total_hours, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, rec.Username, rec.Date, rec.ClockIn, rec.TotalHours, rec.Status)

	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert attendance record: %w", err)
	}
	return rec, nil
}

// MarkStatus records an administratively assigned status for a day, creating
// the row when the employee never clocked in. Clock data on an existing row
// is left untouched; only the status changes.
func (r *AttendanceRepo) MarkStatus(ctx context.Context, rec *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO attendance_records (username, date, clock_in, total_hours, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (username, date) DO UPDATE SET status = EXCLUDED.status
		RETURNING id, clock_in, clock_out, total_hours, status, created_at
	`, rec.Username, rec.Date, rec.ClockIn, rec.TotalHours, rec.Status)

	err := row.Scan(&rec.ID, &rec.ClockIn, &rec.ClockOut, &rec.TotalHours, &rec.Status, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("mark attendance status: %w", err)
	}
	return rec, nil
}

// Close stamps the clock-out on an open session. The clock_out IS NULL guard
// keeps a closed session immutable even under concurrent clock-outs.
func (r *AttendanceRepo) Close(ctx context.Context, id int64, clockOut time.Time, totalHours string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE attendance_records
		SET clock_out = $1, total_hours = $2
		WHERE id = $3 AND clock_out IS NULL
	`, clockOut, totalHours, id)
	if err != nil {
		return fmt.Errorf("close attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AttendanceRepo) ListByUsername(ctx context.Context, username string) ([]models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, username, date, clock_in, clock_out, total_hours, status, created_at
		FROM attendance_records
		WHERE username = $1
		ORDER BY date DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	var out []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.Username, &rec.Date, &rec.ClockIn, &rec.ClockOut,
			&rec.TotalHours, &rec.Status, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return out, nil
}
