package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

// ProfileHandler serves the authenticated employee's own record, addressed by
// the username claim rather than a path parameter.
type ProfileHandler struct {
	employees *services.EmployeeService
}

func NewProfileHandler(employees *services.EmployeeService) *ProfileHandler {
	return &ProfileHandler{employees: employees}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	employee, err := h.employees.GetByUsername(c.Request.Context(), c.GetString("username"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"employee": employee})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	employee, err := h.employees.GetByUsername(c.Request.Context(), c.GetString("username"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	// Employees may edit contact and bank details, not their pay or role.
	in := services.UpdateEmployeeInput{
		Name:      req.Name,
		Password:  req.Password,
		Phone:     req.Phone,
		Address:   req.Address,
		DOB:       req.DOB,
		BankName:  req.BankName,
		AccountNo: req.AccountNo,
		IFSC:      req.IFSC,
		PAN:       req.PAN,
		Gender:    req.Gender,
	}

	updated, err := h.employees.Update(c.Request.Context(), employee.ID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"employee": updated})
}
