package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusaauth/internal/services"
)

type VerifyHandler struct {
	credentials services.CredentialService
}

func NewVerifyHandler(credentials services.CredentialService) *VerifyHandler {
	return &VerifyHandler{credentials: credentials}
}

type sendOtpRequest struct {
	PendingID string `json:"pending_id" binding:"required"`
	Method    string `json:"method" binding:"required,oneof=email phone"`
}

// @Summary      Отправка OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        send  body      sendOtpRequest  true  "Заявка и способ доставки"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /register/otp [post]
func (h *VerifyHandler) SendOtp(c *gin.Context) {
	var req sendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.SendOtp(req.PendingID, req.Method); err != nil {
		respondServiceError(c, "otp-send", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// @Summary      Повторная отправка OTP
// @Description  Не чаще одного раза в кулдаун для пары (заявка, способ)
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        resend  body      sendOtpRequest  true  "Заявка и способ доставки"
// @Success      200  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /register/otp/resend [post]
func (h *VerifyHandler) ResendOtp(c *gin.Context) {
	var req sendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentials.ResendOtp(req.PendingID, req.Method); err != nil {
		respondServiceError(c, "otp-resend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

type confirmOtpRequest struct {
	PendingID string `json:"pending_id" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

// @Summary      Подтверждение OTP
// @Description  Одноразовое подтверждение кода и создание аккаунта
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        confirm  body      confirmOtpRequest  true  "Заявка и код"
// @Success      200  {object}  models.AuthResult
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /register/confirm [post]
func (h *VerifyHandler) ConfirmOtp(c *gin.Context) {
	var req confirmOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.credentials.VerifyOtp(req.PendingID, req.Code)
	if err != nil {
		respondServiceError(c, "otp-confirm", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "verified",
		"message": "OTP verified successfully. Account created.",
		"account": result.Account,
		"tokens": gin.H{
			"access_token": result.AccessToken,
		},
	})
}
