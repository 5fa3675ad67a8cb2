package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type PayrollHandler struct {
	payroll *services.PayrollService
}

type SavePayrollRequest struct {
	Month string `json:"month" binding:"required"`
	Year  int    `json:"year" binding:"required"`
}

func NewPayrollHandler(payroll *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

func (h *PayrollHandler) Overview(c *gin.Context) {
	overview, err := h.payroll.Overview(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"overview": overview})
}

func (h *PayrollHandler) Save(c *gin.Context) {
	var req SavePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	report, err := h.payroll.SaveMonthly(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"report": report})
}

func (h *PayrollHandler) Get(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}

	report, err := h.payroll.GetMonthly(c.Request.Context(), month, year)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"report": report})
}

// Export streams the saved report for a month as an XLSX attachment.
func (h *PayrollHandler) Export(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}

	buf, err := h.payroll.ExportMonthlyXLSX(c.Request.Context(), month, year)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("payroll-%s-%d.xlsx", month, year)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func monthYearParams(c *gin.Context) (string, int, bool) {
	month := c.Param("month")
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || month == "" {
		utils.RespondValidationError(c, "month and numeric year required")
		return "", 0, false
	}
	return month, year, true
}
