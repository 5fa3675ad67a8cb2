package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

const clockLayout = "15:04:05"

type AttendanceHandler struct {
	attendance *services.AttendanceService
}

func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type MarkAttendanceRequest struct {
	Date    string `json:"date"`
	Records []struct {
		Username string `json:"username" binding:"required"`
		Status   string `json:"status" binding:"required"`
	} `json:"records" binding:"required"`
}

// SaveAll bulk-saves admin-marked statuses, including Absent, for one day.
func (h *AttendanceHandler) SaveAll(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	marks := make([]services.DayMark, 0, len(req.Records))
	for _, rec := range req.Records {
		marks = append(marks, services.DayMark{Username: rec.Username, Status: rec.Status})
	}

	records, err := h.attendance.MarkDay(c.Request.Context(), req.Date, marks)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(records))
	for i := range records {
		views = append(views, attendanceView(&records[i]))
	}
	utils.RespondOK(c, gin.H{"message": "Attendance saved", "records": views})
}

func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	username := c.GetString("username")

	rec, err := h.attendance.ClockIn(c.Request.Context(), username)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"record": attendanceView(rec)})
}

func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	username := c.GetString("username")

	rec, err := h.attendance.ClockOut(c.Request.Context(), username)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"record": attendanceView(rec)})
}

func (h *AttendanceHandler) Today(c *gin.Context) {
	username := c.Param("username")

	rec, err := h.attendance.Today(c.Request.Context(), username)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if rec == nil {
		utils.RespondOK(c, gin.H{"record": nil})
		return
	}
	utils.RespondOK(c, gin.H{"record": attendanceView(rec)})
}

func (h *AttendanceHandler) History(c *gin.Context) {
	username := c.Param("username")

	records, err := h.attendance.History(c.Request.Context(), username)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	views := make([]gin.H, 0, len(records))
	for i := range records {
		views = append(views, attendanceView(&records[i]))
	}
	utils.RespondOK(c, gin.H{"records": views})
}

func attendanceView(rec *models.AttendanceRecord) gin.H {
	view := gin.H{
		"date":        rec.Date,
		"clock_in":    rec.ClockIn.Format(clockLayout),
		"clock_out":   nil,
		"total_hours": rec.TotalHours,
		"status":      rec.Status,
	}
	if rec.ClockOut != nil {
		view["clock_out"] = rec.ClockOut.Format(clockLayout)
	}
	return view
}
