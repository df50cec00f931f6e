package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusaauth/internal/services"
)

type PasswordHandler struct {
	credentials services.CredentialService
}

func NewPasswordHandler(credentials services.CredentialService) *PasswordHandler {
	return &PasswordHandler{credentials: credentials}
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary      Запрос сброса пароля
// @Description  Отправляет reset-токен на почту аккаунта
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      forgotPasswordRequest  true  "Email аккаунта"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /password/forgot [post]
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.ForgotPassword(req.Email); err != nil {
		respondServiceError(c, "password-forgot", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset email sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// @Summary      Сброс пароля по токену
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      resetPasswordRequest  true  "Токен и новый пароль"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /password/reset [post]
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondServiceError(c, "password-reset", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// @Summary      Смена пароля (требует токен)
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        change  body      changePasswordRequest  true  "Текущий и новый пароль"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /password/change [post]
func (h *PasswordHandler) Change(c *gin.Context) {
	accountID, ok := accountIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.ChangePassword(accountID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, "password-change", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
