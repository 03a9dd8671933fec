package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/davidmnz/textclassify/internal/adapter/http/handler"
	"github.com/davidmnz/textclassify/internal/adapter/http/middleware"
	"github.com/davidmnz/textclassify/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(predictionUC usecase.PredictionUsecase, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(predictionUC)
	predictHandler := handler.NewPredictHandler(predictionUC)

	// Service descriptor and health
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Prediction routes
	router.POST("/predict", predictHandler.Predict)
	router.POST("/predict/batch", predictHandler.PredictBatch)
	router.GET("/model/info", predictHandler.ModelInfo)

	return router
}
