package routes

import (
	"github.com/gin-gonic/gin"

	"ispark/internal/handlers"
	"ispark/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	verifyHandler *handlers.VerifyHandler,
	deviceHandler *handlers.DeviceHandler,
	reportHandler *handlers.ReportHandler,
	newsHandler *handlers.NewsHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/token/refresh", authHandler.RefreshToken)
	r.POST("/send-code", verifyHandler.SendCode)
	r.POST("/verify-code", verifyHandler.VerifyAndRegister)
	r.POST("/password-reset/send-code", verifyHandler.SendResetCode)
	r.POST("/password-reset/confirm", verifyHandler.ConfirmReset)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.GET("/check-token", authHandler.CheckToken)
	r.POST("/devices", deviceHandler.RegisterDevice)

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.POST("/", reportHandler.Upload)
		reports.GET("/", reportHandler.List)
		reports.GET("/:id", reportHandler.Detail)
		reports.POST("/:id/status", middleware.RequireStaff(), reportHandler.UpdateStatus)
		reports.GET("/:id/pdf", middleware.RequireStaff(), reportHandler.ExportPDF)
	}

	// NEWS
	news := r.Group("/news")
	{
		news.GET("/", newsHandler.List)
		news.GET("/:id", newsHandler.Detail)
		news.POST("/", middleware.RequireStaff(), newsHandler.Create)
		news.PUT("/:id", middleware.RequireStaff(), newsHandler.Update)
		news.DELETE("/:id", middleware.RequireStaff(), newsHandler.Delete)
	}

	return r
}
