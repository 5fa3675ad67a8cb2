package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/config"
	"github.com/MATHANGI2003/pms/internal/db"
	apphttp "github.com/MATHANGI2003/pms/internal/http"
	"github.com/MATHANGI2003/pms/internal/mailer"
	"github.com/MATHANGI2003/pms/internal/repo"
	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	slog.SetDefault(logger)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(cfg.DBURL); err != nil {
		logger.Error("migrate database", "error", err)
		os.Exit(1)
	}

	database, err := db.Connect(ctx, db.Options{
		URL:          cfg.DBURL,
		MaxConns:     cfg.DBMaxConns,
		MinConns:     cfg.DBMinConns,
		ConnIdleTime: cfg.DBConnIdleTime,
	})
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureAdmin(ctx, database.Pool, cfg.RequestTimeout, cfg.AdminEmail); err != nil {
		logger.Error("seed admin", "error", err)
		os.Exit(1)
	}

	adminRepo := repo.NewAdminRepo(database.Pool, cfg.RequestTimeout)
	employeeRepo := repo.NewEmployeeRepo(database.Pool, cfg.RequestTimeout)
	attendanceRepo := repo.NewAttendanceRepo(database.Pool, cfg.RequestTimeout)
	departmentRepo := repo.NewDepartmentRepo(database.Pool, cfg.RequestTimeout)
	leaveRepo := repo.NewLeaveRepo(database.Pool, cfg.RequestTimeout)
	payrollRepo := repo.NewPayrollRepo(database.Pool, cfg.RequestTimeout)
	onsiteRepo := repo.NewOnsiteRepo(database.Pool, cfg.RequestTimeout)
	loginRepo := repo.NewLoginRepo(database.Pool, cfg.RequestTimeout)

	tokens := token.NewMemoryStore(cfg.ResetTokenTTL)

	var mail mailer.Mailer
	if cfg.MailEnabled {
		sesMailer, err := mailer.NewSESMailer(ctx, cfg.MailFrom)
		if err != nil {
			logger.Error("init mailer", "error", err)
			os.Exit(1)
		}
		mail = sesMailer
	} else {
		mail = &mailer.LogMailer{Logger: logger}
	}

	deps := apphttp.Dependencies{
		Config:      cfg,
		Logger:      logger,
		DB:          database,
		Auth:        services.NewAuthService(adminRepo, employeeRepo, loginRepo, tokens, mail, cfg, logger),
		Employees:   services.NewEmployeeService(employeeRepo),
		Attendance:  services.NewAttendanceService(attendanceRepo, cfg.LateCutoff),
		Departments: services.NewDepartmentService(departmentRepo),
		Leaves:      services.NewLeaveService(leaveRepo),
		Payroll:     services.NewPayrollService(employeeRepo, departmentRepo, payrollRepo),
		Onsite:      services.NewOnsiteService(onsiteRepo),
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newLogger(env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
