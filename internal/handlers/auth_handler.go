package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusaauth/internal/models"
	"nusaauth/internal/services"
)

type AuthHandler struct {
	credentials services.CredentialService
}

func NewAuthHandler(credentials services.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

type registerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

// @Summary      Регистрация
// @Description  Создаёт заявку на регистрацию; аккаунт появится после подтверждения OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      registerRequest  true  "Данные регистрации"
// @Success      201  {object}  models.RegistrationReceipt
// @Failure      400  {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.credentials.Register(req.FullName, req.Email, req.Phone, req.Password)
	if err != nil {
		respondServiceError(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// @Summary      Вход в систему
// @Description  Проверяет пароль и возвращает аккаунт с bearer-токеном
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200  {object}  models.AuthResult
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.credentials.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"account": result.Account,
		"tokens": gin.H{
			"access_token": result.AccessToken,
		},
	})
}
