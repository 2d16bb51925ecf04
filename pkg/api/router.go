package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"databowl-gateway/pkg/logger"
	"databowl-gateway/pkg/middleware"
)

// NewRouter registers the gateway routes on a fresh engine.
func NewRouter(h *Handlers, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(),
	)

	router.NoMethod(h.MethodNotAllowed)
	router.NoRoute(h.NotFound)

	router.POST("/api/validate", h.HandleValidate)
	router.POST("/api/submit-lead", h.HandleSubmitLead)
	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
