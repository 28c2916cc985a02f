package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weatherchap/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
	)

	router.GET("/healthz", handler.Health)
	if cfg.HTTP.StaticDir != "" {
		router.Static("/static", cfg.HTTP.StaticDir)
	}

	limited := router.Group("/", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		limited.GET("/", handler.Home)
		limited.GET("/api/v1/outfit", handler.Outfit)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
