package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nusaauth/internal/handlers"
	"nusaauth/internal/middleware"
	"nusaauth/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	verifyHandler *handlers.VerifyHandler,
	passwordHandler *handlers.PasswordHandler,
	tokens services.TokenService,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/register/otp", verifyHandler.SendOtp)
	r.POST("/register/otp/resend", verifyHandler.ResendOtp)
	r.POST("/register/confirm", verifyHandler.ConfirmOtp)
	r.POST("/login", authHandler.Login)
	r.POST("/password/forgot", passwordHandler.Forgot)
	r.POST("/password/reset", passwordHandler.Reset)

	// ---- protected
	protected := r.Group("/", middleware.AuthMiddleware(tokens))
	{
		protected.POST("/password/change", passwordHandler.Change)
	}

	return r
}
