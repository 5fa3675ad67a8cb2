package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MATHANGI2003/pms/internal/services"
	"github.com/MATHANGI2003/pms/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type EmployeeLoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.auth.AdminLogin(c.Request.Context(), req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{
		"message":         "Admin login successful",
		"token":           result.Token,
		"role":            result.Role,
		"username":        result.Username,
		"previous_logins": result.PreviousLogins,
	})
}

func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	var req EmployeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		utils.RespondValidationError(c, "username or email required")
		return
	}

	result, err := h.auth.EmployeeLogin(c.Request.Context(), identifier, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{
		"message":         "Employee login successful",
		"token":           result.Token,
		"role":            result.Role,
		"username":        result.Username,
		"full_name":       result.FullName,
		"previous_logins": result.PreviousLogins,
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	employee, err := h.auth.Signup(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{
		"message":     "Signup successful",
		"employee_id": employee.EmployeeID,
		"username":    employee.Username,
	})
}

func (h *AuthHandler) AdminForgotPassword(c *gin.Context) {
	if err := h.auth.RequestAdminReset(c.Request.Context()); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Reset link sent to admin email"})
}

func (h *AuthHandler) EmployeeForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.auth.RequestEmployeeReset(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Reset link sent to your email"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, gin.H{"message": "Password reset successful"})
}
