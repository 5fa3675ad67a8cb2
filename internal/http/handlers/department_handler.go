package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type DepartmentHandler struct {
	departments *services.DepartmentService
}

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Manager     string  `json:"manager" binding:"required"`
	Description *string `json:"description"`
}

func NewDepartmentHandler(departments *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.departments.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"departments": departments, "count": len(departments)})
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "invalid department id")
		return
	}

	department, err := h.departments.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"department": department})
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	department, err := h.departments.Create(c.Request.Context(), req.Name, req.Manager, req.Description)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"department": department})
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "invalid department id")
		return
	}

	if err := h.departments.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Department deleted"})
}
