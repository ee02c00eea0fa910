package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ispark/internal/config"
	"ispark/internal/handlers"
	"ispark/internal/middleware"
	"ispark/internal/pdf"
	"ispark/internal/push"
	"ispark/internal/repositories"
	"ispark/internal/routes"
	"ispark/internal/services"
	"ispark/internal/sms"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "ispark/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey(cfg.JWT.Secret)

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

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)
	newsRepo := repositories.NewNewsRepository(db)

	// === SMS провайдер из конфига ===
	var smsSender sms.Sender
	switch cfg.SMS.Provider {
	case "twilio":
		smsSender = sms.NewTwilioClient(
			cfg.SMS.Twilio.AccountSID,
			cfg.SMS.Twilio.AuthToken,
			cfg.SMS.Twilio.FromNumber,
		)
	default:
		smsSender = sms.NewMobizonClient(
			cfg.SMS.Mobizon.APIKey,
			cfg.SMS.Mobizon.SenderID,
			cfg.SMS.Mobizon.DryRun,
		)
	}

	// === FCM (необязателен: без ключа пуши просто не уходят) ===
	var pushSender push.Sender
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := push.NewFCMClient(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Printf("FCM недоступен, пуши отключены: %v", err)
		} else {
			pushSender = fcm
		}
	}

	// === Services ===
	authService := services.NewAuthService()
	userService := services.NewUserService(userRepo)
	verificationService := services.NewVerificationService(codeRepo, userRepo, smsSender, authService)
	notifier := services.NewNotifierService(deviceRepo, pushSender)

	var telegram *services.TelegramService
	if cfg.Telegram.BotToken != "" {
		telegram = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)
	}

	reportService := services.NewReportService(reportRepo, notifier, telegram)
	deviceService := services.NewDeviceService(deviceRepo)
	newsService := services.NewNewsService(newsRepo)

	// PDF генератор (нужен TTF с кириллицей)
	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir, "assets/fonts/DejaVuSans.ttf")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	deviceHandler := handlers.NewDeviceHandler(deviceService)
	reportHandler := handlers.NewReportHandler(reportService, userService, pdfGen, cfg.Files.RootDir)
	newsHandler := handlers.NewNewsHandler(newsService, cfg.Files.RootDir)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		verifyHandler,
		deviceHandler,
		reportHandler,
		newsHandler,
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
