package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/config"
	"github.com/MATHANGI2003/pms/internal/db"
	"github.com/MATHANGI2003/pms/internal/http/handlers"
	"github.com/MATHANGI2003/pms/internal/http/middleware"
	"github.com/MATHANGI2003/pms/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	Logger      *slog.Logger
	DB          *db.DB
	Auth        *services.AuthService
	Employees   *services.EmployeeService
	Attendance  *services.AttendanceService
	Departments *services.DepartmentService
	Leaves      *services.LeaveService
	Payroll     *services.PayrollService
	Onsite      *services.OnsiteService
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.AllowedOrigins))

	r.GET("/healthz", handlers.Health(deps.DB))

	authHandler := handlers.NewAuthHandler(deps.Auth)
	employeeHandler := handlers.NewEmployeeHandler(deps.Employees, deps.Payroll)
	attendanceHandler := handlers.NewAttendanceHandler(deps.Attendance)
	departmentHandler := handlers.NewDepartmentHandler(deps.Departments)
	leaveHandler := handlers.NewLeaveHandler(deps.Leaves)
	payrollHandler := handlers.NewPayrollHandler(deps.Payroll)
	onsiteHandler := handlers.NewOnsiteHandler(deps.Onsite)
	profileHandler := handlers.NewProfileHandler(deps.Employees)

	api := r.Group("/api/v1")

	// Unauthenticated auth endpoints, rate limited to slow down guessing.
	limiter := middleware.NewRateLimiter(deps.Config.RateLimitPerMinute)
	auth := api.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.POST("/employee/login", authHandler.EmployeeLogin)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/admin/forgot-password", authHandler.AdminForgotPassword)
		auth.POST("/employee/forgot-password", authHandler.EmployeeForgotPassword)
		auth.POST("/reset-password/:token", authHandler.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(middleware.AuthConfig{Secret: deps.Config.JWTSecret}))
	{
		protected.GET("/me", profileHandler.Get)
		protected.PUT("/me", profileHandler.Update)

		protected.POST("/attendance/clock-in", attendanceHandler.ClockIn)
		protected.POST("/attendance/clock-out", attendanceHandler.ClockOut)
		protected.GET("/attendance/today/:username", attendanceHandler.Today)
		protected.GET("/attendance/history/:username", attendanceHandler.History)

		protected.POST("/leaves", leaveHandler.Apply)
		protected.GET("/leaves/mine", leaveHandler.Mine)

		protected.GET("/departments", departmentHandler.List)
		protected.GET("/departments/:id", departmentHandler.Get)
		protected.GET("/onsite", onsiteHandler.List)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/employees", employeeHandler.Create)
			admin.GET("/employees", employeeHandler.List)
			admin.GET("/employees/:id", employeeHandler.Get)
			admin.PUT("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Delete)
			admin.POST("/employees/generate-id", employeeHandler.GenerateID)

			admin.POST("/departments", departmentHandler.Create)
			admin.DELETE("/departments/:id", departmentHandler.Delete)

			admin.POST("/attendance/save-all", attendanceHandler.SaveAll)

			admin.GET("/leaves", leaveHandler.ListAll)
			admin.PUT("/leaves/:id/status", leaveHandler.Decide)

			admin.GET("/payroll/overview", payrollHandler.Overview)
			admin.GET("/payroll/live-total", employeeHandler.LiveTotal)
			admin.POST("/payroll/reports", payrollHandler.Save)
			admin.GET("/payroll/reports/:year/:month", payrollHandler.Get)
			admin.GET("/payroll/reports/:year/:month/export", payrollHandler.Export)

			admin.POST("/onsite", onsiteHandler.Create)
			admin.DELETE("/onsite/:email", onsiteHandler.Delete)
		}
	}

	return r
}
