package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oleynichenko/ai-tools-api/internal/config"
	"github.com/oleynichenko/ai-tools-api/internal/handler"
	"github.com/oleynichenko/ai-tools-api/internal/middleware"
	"github.com/oleynichenko/ai-tools-api/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	receiptH *handler.ReceiptHandler,
	audioH *handler.AudioHandler,
	modelH *handler.ModelHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	// Extraction routes
	r.POST("/receipt/parse-receipt", receiptH.ParseReceipt)
	r.POST("/audio/analyse-audio", audioH.AnalyseAudio)
	r.GET("/openai/models", modelH.ListModels)

	// Auth routes
	auth := r.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/register", authH.Register)
	auth.GET("/profile", middleware.AuthMiddleware(authSvc), authH.Profile)

	return r
}
