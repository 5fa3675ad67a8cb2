package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/models"
	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type OnsiteHandler struct {
	onsite *services.OnsiteService
}

type CreateOnsiteRequest struct {
	Name      string  `json:"name" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Location  string  `json:"location"`
	LocalTime *string `json:"local_time"`
	Currency  *string `json:"currency"`
	Status    string  `json:"status"`
}

func NewOnsiteHandler(onsite *services.OnsiteService) *OnsiteHandler {
	return &OnsiteHandler{onsite: onsite}
}

func (h *OnsiteHandler) List(c *gin.Context) {
	employees, err := h.onsite.List(c.Request.Context(), c.Query("location"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"employees": employees})
}

func (h *OnsiteHandler) Create(c *gin.Context) {
	var req CreateOnsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	employee, err := h.onsite.Create(c.Request.Context(), &models.OnsiteEmployee{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		Location:  req.Location,
		LocalTime: req.LocalTime,
		Currency:  req.Currency,
		Status:    req.Status,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondCreated(c, gin.H{"employee": employee})
}

func (h *OnsiteHandler) Delete(c *gin.Context) {
	email := c.Param("email")
	if err := h.onsite.DeleteByEmail(c.Request.Context(), email); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Onsite employee removed"})
}
