package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MATHANGI2003/pms/internal/config"
	"github.com/MATHANGI2003/pms/internal/mailer"
	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/token"
	"github.com/MATHANGI2003/pms/internal/utils"
)

const (
	recentLoginLimit = 10

	// defaultEmployeePassword is assigned when an admin creates an employee
	// without choosing one. It is a normal bcrypt-hashed credential, not a
	// bypass: once rotated it no longer works.
	defaultEmployeePassword = "emp123"
)

const weakPasswordMessage = "Password must be at least 8 characters and include a number and a special character"

type AdminStore interface {
	Get(ctx context.Context) (*models.Admin, error)
	Create(ctx context.Context, email, passwordHash string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, passwordHash string) error
}

type EmployeeDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	NextEmployeeID(ctx context.Context) (string, error)
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type LoginLog interface {
	Record(ctx context.Context, username, email, role string) error
	Recent(ctx context.Context, role string, limit int) ([]models.LoginRecord, error)
}

type AuthService struct {
	admins    AdminStore
	employees EmployeeDirectory
	logins    LoginLog
	tokens    token.Store
	mail      mailer.Mailer
	cfg       *config.Config
	logger    *slog.Logger
	now       func() time.Time
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token          string               `json:"token"`
	Username       string               `json:"username"`
	FullName       string               `json:"full_name,omitempty"`
	Role           string               `json:"role"`
	PreviousLogins []models.LoginRecord `json:"previous_logins"`
}

func NewAuthService(
	admins AdminStore,
	employees EmployeeDirectory,
	logins LoginLog,
	tokens token.Store,
	mail mailer.Mailer,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		admins:    admins,
		employees: employees,
		logins:    logins,
		tokens:    tokens,
		mail:      mail,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service's time source. Test hook.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// AdminLogin authenticates the admin singleton, provisioning it with the
// default password if it does not exist yet. Only the stored hash is checked:
// the seeded default works until the password is rotated, and not after.
func (s *AuthService) AdminLogin(ctx context.Context, password string) (*LoginResult, error) {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(admin.PasswordHash, password) {
		return nil, utils.NewAppError(http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid password")
	}

	return s.finishLogin(ctx, admin.Username, admin.Email, models.RoleAdmin, "")
}

// EmployeeLogin resolves the identity by username or email.
func (s *AuthService) EmployeeLogin(ctx context.Context, identifier, password string) (*LoginResult, error) {
	employee, err := s.employees.GetByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, s.internal("employee lookup failed", err)
	}

	if !utils.CheckPassword(employee.PasswordHash, password) {
		return nil, utils.NewAppError(http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid password")
	}

	fullName := employee.Name
	if fullName == "" {
		fullName = employee.Username
	}
	return s.finishLogin(ctx, employee.Username, employee.Email, models.RoleEmployee, fullName)
}

// Signup registers a new employee with a self-chosen password.
func (s *AuthService) Signup(ctx context.Context, fullName, email, password string) (*models.Employee, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" || password == "" {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "All fields are required")
	}
	if !utils.ValidPassword(password) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeWeakPassword, weakPasswordMessage)
	}

	exists, err := s.employees.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, s.internal("signup email check failed", err)
	}
	if exists {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Email already registered")
	}

	employeeID, err := s.employees.NextEmployeeID(ctx)
	if err != nil {
		return nil, s.internal("employee id generation failed", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, s.internal("password hashing failed", err)
	}

	employee := &models.Employee{
		EmployeeID:   employeeID,
		Username:     usernameFromEmail(email),
		Name:         fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleEmployee,
		Type:         models.EmployeeTypePermanent,
		Status:       models.EmployeeStatusActive,
		JoinDate:     s.now(),
	}

	created, err := s.employees.Create(ctx, employee)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeConflict, "Email already registered")
	}
	if err != nil {
		return nil, s.internal("employee creation failed", err)
	}
	return created, nil
}

// RequestAdminReset issues a reset token for the admin singleton. The mail
// always goes to the fixed admin address; the admin is auto-provisioned if
// absent rather than failing.
func (s *AuthService) RequestAdminReset(ctx context.Context) error {
	if _, err := s.ensureAdmin(ctx); err != nil {
		return err
	}
	return s.issueResetToken(ctx, models.RoleAdmin, models.AdminUsername, s.cfg.AdminEmail)
}

// RequestEmployeeReset issues a reset token for a registered employee email.
// Unlike the admin path, an unknown email is an error.
func (s *AuthService) RequestEmployeeReset(ctx context.Context, email string) error {
	employee, err := s.employees.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return utils.NewAppError(http.StatusNotFound, utils.CodeNotFound, "Email not found in records")
	}
	if err != nil {
		return s.internal("employee lookup failed", err)
	}
	return s.issueResetToken(ctx, models.RoleEmployee, employee.Username, employee.Email)
}

// ResetPassword consumes a reset token and rotates the subject's password.
// Order matters: the password policy is checked before the token is claimed,
// so a weak password leaves the token redeemable; the claim itself is atomic,
// so a concurrently raced token fails with InvalidToken here.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if _, err := s.tokens.Peek(tokenStr); err != nil {
		return tokenError(err)
	}

	if !utils.ValidPassword(newPassword) {
		return utils.NewAppError(http.StatusBadRequest, utils.CodeWeakPassword, weakPasswordMessage)
	}

	data, err := s.tokens.Consume(tokenStr)
	if err != nil {
		return tokenError(err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return s.internal("password hashing failed", err)
	}

	switch data.Role {
	case models.RoleAdmin:
		err = s.admins.UpdatePassword(ctx, hash)
	case models.RoleEmployee:
		err = s.employees.UpdatePasswordByEmail(ctx, data.Email, hash)
	default:
		err = fmt.Errorf("unknown token role %q", data.Role)
	}
	if err != nil {
		// The token is already consumed; the caller must see the failure so
		// the flow can be restarted from forgot-password.
		return s.internal("password update failed", err)
	}
	return nil
}

func (s *AuthService) ensureAdmin(ctx context.Context) (*models.Admin, error) {
	admin, err := s.admins.Get(ctx)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, s.internal("admin lookup failed", err)
	}

	hash, err := utils.HashPassword(models.DefaultAdminPassword)
	if err != nil {
		return nil, s.internal("password hashing failed", err)
	}
	admin, err = s.admins.Create(ctx, s.cfg.AdminEmail, hash)
	if err != nil {
		return nil, s.internal("admin provisioning failed", err)
	}
	s.logger.Info("default admin provisioned", "email", admin.Email)
	return admin, nil
}

func (s *AuthService) issueResetToken(ctx context.Context, role, username, email string) error {
	tok, err := token.New()
	if err != nil {
		return s.internal("token generation failed", err)
	}

	s.tokens.Save(tok, token.Data{
		Role:     role,
		Email:    email,
		Username: username,
		IssuedAt: s.now(),
	})

	link := fmt.Sprintf("%s/%s/reset-password/%s", s.cfg.FrontendOrigin, role, tok)
	s.dispatchResetMail(email, role, link)
	return nil
}

// dispatchResetMail is fire-and-forget: a delivery failure is logged, never
// surfaced, so the endpoint cannot be used to probe which emails exist.
func (s *AuthService) dispatchResetMail(email, role, link string) {
	subject := "Password Reset Request - Payroll Management"
	body := fmt.Sprintf(
		"<h2>Reset Your Password</h2><p>Click below to reset your %s password:</p><a href=%q>%s</a><p><small>This link expires in 1 hour.</small></p>",
		role, link, link,
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mail.Send(ctx, email, subject, body); err != nil {
			s.logger.Error("reset mail dispatch failed", "role", role, "error", err)
		}
	}()
}

func (s *AuthService) finishLogin(ctx context.Context, username, email, role, fullName string) (*LoginResult, error) {
	if err := s.logins.Record(ctx, username, email, role); err != nil {
		return nil, s.internal("login record failed", err)
	}

	previous, err := s.logins.Recent(ctx, role, recentLoginLimit)
	if err != nil {
		return nil, s.internal("login history lookup failed", err)
	}

	signed, err := s.generateToken(username, role)
	if err != nil {
		return nil, s.internal("token signing failed", err)
	}

	return &LoginResult{
		Token:          signed,
		Username:       username,
		FullName:       fullName,
		Role:           role,
		PreviousLogins: previous,
	}, nil
}

func (s *AuthService) generateToken(username, role string) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.cfg.JWTExpiry)),
			Subject:   username,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) internal(msg string, err error) error {
	s.logger.Error(msg, "error", err)
	return utils.NewAppError(http.StatusInternalServerError, utils.CodeInternal, "Server error")
}

func tokenError(err error) error {
	if errors.Is(err, token.ErrExpired) {
		return utils.NewAppError(http.StatusBadRequest, utils.CodeTokenExpired, "Token expired")
	}
	return utils.NewAppError(http.StatusBadRequest, utils.CodeInvalidToken, "Invalid token")
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
