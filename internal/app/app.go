package app

import (
	"database/sql"
	"fmt"
	"log"

	"nusaauth/internal/config"
	"nusaauth/internal/handlers"
	"nusaauth/internal/migrations"
	"nusaauth/internal/repositories"
	"nusaauth/internal/routes"
	"nusaauth/internal/services"
	"nusaauth/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	_ "nusaauth/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Run() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatal("Ошибка загрузки конфигурации: ", err)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Migrations ===
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Ошибка настройки goose: ", err)
	}
	if err := goose.Up(db, "."); err != nil {
		log.Fatal("Ошибка миграций: ", err)
	}

	// === Repos ===
	accountRepo := repositories.NewAccountRepository(db)
	pendingRepo := repositories.NewPendingRegistrationRepository(db)
	otpRepo := repositories.NewOtpChallengeRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.BcryptCost)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL())
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// SMS провайдер (Mobizon) из конфига
	mobizonClient := utils.NewClientWithOptions(
		cfg.Mobizon.APIKey,
		cfg.Mobizon.SenderID,
		cfg.Mobizon.DryRun,
	)
	notifier := services.NewNotifier(emailService, mobizonClient)

	credentialService := services.NewCredentialService(
		accountRepo,
		pendingRepo,
		otpRepo,
		notifier,
		emailService,
		authService,
		tokenService,
		cfg.Auth,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(credentialService)
	verifyHandler := handlers.NewVerifyHandler(credentialService)
	passwordHandler := handlers.NewPasswordHandler(credentialService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		verifyHandler,
		passwordHandler,
		tokenService,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
