package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veridoc/veridoc/internal/middleware"
)

type RouterDeps struct {
	Documents       *DocumentHandler
	Evaluate        *EvaluateHandler
	RateLimitWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	writeGroup := api.Group("")
	if deps.RateLimitWindow > 0 {
		writeGroup.Use(middleware.RateLimit(deps.RateLimitWindow))
	}
	writeGroup.POST("/documents", deps.Documents.Ingest)
	writeGroup.POST("/evaluate", deps.Evaluate.Evaluate)

	api.GET("/documents", deps.Documents.List)
	api.GET("/documents/:id", deps.Documents.Get)
	api.DELETE("/documents/:id", deps.Documents.Delete)
}
