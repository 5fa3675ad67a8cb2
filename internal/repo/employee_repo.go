package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MATHANGI2003/pms/internal/models"
)

const employeeColumns = `
	id, employee_id, username, name, email, password_hash, position, salary,
	role, type, status, join_date, phone, address, department, dob,
	bank_name, account_no, ifsc, pan, gender, manager, location,
	created_at, updated_at`

type EmployeeRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewEmployeeRepo(pool *pgxpool.Pool, timeout time.Duration) *EmployeeRepo {
	return &EmployeeRepo{pool: pool, timeout: timeout}
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Username, &e.Name, &e.Email, &e.PasswordHash,
		&e.Position, &e.Salary, &e.Role, &e.Type, &e.Status, &e.JoinDate,
		&e.Phone, &e.Address, &e.Department, &e.DOB,
		&e.BankName, &e.AccountNo, &e.IFSC, &e.PAN, &e.Gender, &e.Manager, &e.Location,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (
			employee_id, username, name, email, password_hash, position, salary,
			role, type, status, join_date, phone, address, department, dob,
			bank_name, account_no, ifsc, pan, gender, manager, location,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`,
		e.EmployeeID, e.Username, e.Name, e.Email, e.PasswordHash, e.Position, e.Salary,
		e.Role, e.Type, e.Status, e.JoinDate, e.Phone, e.Address, e.Department, e.DOB,
		e.BankName, e.AccountNo, e.IFSC, e.PAN, e.Gender, e.Manager, e.Location,
	)

	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get employee by id: %w", err)
	}
	return e, err
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email)
	e, err := scanEmployee(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return e, err
}

func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = $1`, username)
	e, err := scanEmployee(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get employee by username: %w", err)
	}
	return e, err
}

// GetByUsernameOrEmail resolves a login identifier either way, matching how
// the login form accepts both.
func (r *EmployeeRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE username = $1 OR email = $1
	`, identifier)
	e, err := scanEmployee(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get employee by identifier: %w", err)
	}
	return e, err
}

func (r *EmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)", email)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check employee exists: %w", err)
	}
	return exists, nil
}

// NextEmployeeID produces the next sequential public ID (EMP1001, EMP1002, …).
// The sequence number is compared numerically, not lexicographically, so it
// keeps counting past EMP9999; manually assigned IDs outside the EMP<digits>
// shape are ignored.
func (r *EmployeeRepo) NextEmployeeID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX((substring(employee_id from 4))::int), 0)
		FROM employees
		WHERE employee_id ~ '^EMP[0-9]+$'
	`)
	var last int
	if err := row.Scan(&last); err != nil {
		return "", fmt.Errorf("get last employee sequence: %w", err)
	}
	return nextEmployeeID(last), nil
}

// nextEmployeeID formats the successor of the highest issued sequence number.
// The sequence never drops below the EMP1001 floor, so short manual IDs like
// EMP2 cannot pull new IDs backwards into collisions.
func nextEmployeeID(last int) string {
	if last < 1000 {
		last = 1000
	}
	return "EMP" + strconv.Itoa(last+1)
}

func (r *EmployeeRepo) List(ctx context.Context, page, perPage int) ([]models.Employee, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM employees").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	rows, err := r.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		ORDER BY employee_id
		LIMIT $1 OFFSET $2
	`, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	return out, total, nil
}

// ListAll returns every employee, used by payroll computation.
func (r *EmployeeRepo) ListAll(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("list all employees: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list all employees: %w", err)
	}
	return out, nil
}

func (r *EmployeeRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM employees").Scan(&total); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE employees SET
			employee_id = $1, username = $2, name = $3, email = $4,
			password_hash = $5, position = $6, salary = $7, type = $8,
			status = $9, join_date = $10, phone = $11, address = $12,
			department = $13, dob = $14, bank_name = $15, account_no = $16,
			ifsc = $17, pan = $18, gender = $19, manager = $20, location = $21,
			updated_at = NOW()
		WHERE id = $22
	`,
		e.EmployeeID, e.Username, e.Name, e.Email,
		e.PasswordHash, e.Position, e.Salary, e.Type,
		e.Status, e.JoinDate, e.Phone, e.Address,
		e.Department, e.DOB, e.BankName, e.AccountNo,
		e.IFSC, e.PAN, e.Gender, e.Manager, e.Location,
		e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET password_hash = $1, updated_at = NOW()
		WHERE email = $2
	`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("update employee password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
