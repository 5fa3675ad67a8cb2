package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type EmployeeHandler struct {
	employees *services.EmployeeService
	payroll   *services.PayrollService
}

type CreateEmployeeRequest struct {
	EmployeeID string  `json:"employee_id"`
	Username   string  `json:"username"`
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	JoinDate   string  `json:"join_date"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Department *string `json:"department"`
}

type UpdateEmployeeRequest struct {
	EmployeeID *string  `json:"employee_id"`
	Username   *string  `json:"username"`
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Password   *string  `json:"password"`
	Position   *string  `json:"position"`
	Salary     *float64 `json:"salary"`
	Type       *string  `json:"type"`
	Status     *string  `json:"status"`
	JoinDate   *string  `json:"join_date"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	Department *string  `json:"department"`
	DOB        *string  `json:"dob"`
	BankName   *string  `json:"bank_name"`
	AccountNo  *string  `json:"account_no"`
	IFSC       *string  `json:"ifsc"`
	PAN        *string  `json:"pan"`
	Gender     *string  `json:"gender"`
	Manager    *string  `json:"manager"`
	Location   *string  `json:"location"`
}

const dateLayout = "2006-01-02"

func NewEmployeeHandler(employees *services.EmployeeService, payroll *services.PayrollService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, payroll: payroll}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	in := services.CreateEmployeeInput{
		EmployeeID: req.EmployeeID,
		Username:   req.Username,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Position:   req.Position,
		Salary:     req.Salary,
		Type:       req.Type,
		Status:     req.Status,
		Phone:      req.Phone,
		Address:    req.Address,
		Department: req.Department,
	}
	if req.JoinDate != "" {
		joined, err := time.Parse(dateLayout, req.JoinDate)
		if err != nil {
			utils.RespondValidationError(c, "join_date must be YYYY-MM-DD")
			return
		}
		in.JoinDate = &joined
	}

	employee, err := h.employees.Create(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"employee": employee})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	employees, total, err := h.employees.List(c.Request.Context(), page, perPage)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{
		"employees":  employees,
		"pagination": utils.NewPagination(page, perPage, total),
	})
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "invalid employee id")
		return
	}

	employee, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"employee": employee})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "invalid employee id")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	in := services.UpdateEmployeeInput{
		EmployeeID: req.EmployeeID,
		Username:   req.Username,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Position:   req.Position,
		Salary:     req.Salary,
		Type:       req.Type,
		Status:     req.Status,
		Phone:      req.Phone,
		Address:    req.Address,
		Department: req.Department,
		DOB:        req.DOB,
		BankName:   req.BankName,
		AccountNo:  req.AccountNo,
		IFSC:       req.IFSC,
		PAN:        req.PAN,
		Gender:     req.Gender,
		Manager:    req.Manager,
		Location:   req.Location,
	}
	if req.JoinDate != nil && *req.JoinDate != "" {
		joined, err := time.Parse(dateLayout, *req.JoinDate)
		if err != nil {
			utils.RespondValidationError(c, "join_date must be YYYY-MM-DD")
			return
		}
		in.JoinDate = &joined
	}

	employee, err := h.employees.Update(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"employee": employee})
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "invalid employee id")
		return
	}

	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Employee deleted"})
}

// GenerateID hands the frontend the next sequential employee ID so the admin
// creation form can prefill it.
func (h *EmployeeHandler) GenerateID(c *gin.Context) {
	var req struct {
		EmployeeID string `json:"employee_id"`
	}
	// Body is optional; a provided ID is echoed back unchanged.
	_ = c.ShouldBindJSON(&req)
	if req.EmployeeID != "" {
		utils.RespondOK(c, gin.H{"employee_id": req.EmployeeID})
		return
	}

	next, err := h.employees.NextID(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"employee_id": next})
}

// LiveTotal reports the current payroll total from basic salaries only.
func (h *EmployeeHandler) LiveTotal(c *gin.Context) {
	total, err := h.payroll.LiveTotal(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"total_payroll": total})
}
