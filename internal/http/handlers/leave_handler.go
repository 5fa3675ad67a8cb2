package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type LeaveHandler struct {
	leaves *services.LeaveService
}

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	FromDate  string `json:"from_date" binding:"required"`
	ToDate    string `json:"to_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewLeaveHandler(leaves *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

func (h *LeaveHandler) Apply(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		utils.RespondValidationError(c, "from_date must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		utils.RespondValidationError(c, "to_date must be YYYY-MM-DD")
		return
	}

	leave, err := h.leaves.Apply(c.Request.Context(), c.GetString("username"), req.LeaveType, from, to, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"leave": leave})
}

// Mine lists the authenticated employee's own leave requests.
func (h *LeaveHandler) Mine(c *gin.Context) {
	leaves, err := h.leaves.ListByEmployee(c.Request.Context(), c.GetString("username"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"leaves": leaves})
}

func (h *LeaveHandler) ListAll(c *gin.Context) {
	leaves, err := h.leaves.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"leaves": leaves})
}

func (h *LeaveHandler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "invalid leave id")
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	if req.Status != "approved" && req.Status != "rejected" {
		utils.RespondValidationError(c, "status must be approved or rejected")
		return
	}

	leave, err := h.leaves.Decide(c.Request.Context(), id, req.Status == "approved")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"leave": leave})
}
