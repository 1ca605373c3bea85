package http

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/flow"
	"github.com/coinvault/transfer-gateway/internal/handler"
	"github.com/coinvault/transfer-gateway/internal/monitoring"
	"github.com/coinvault/transfer-gateway/internal/quote"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

func setupCORS(r *gin.Engine, cfg *config.AppConfig) {
	corsOrigins := strings.Split(cfg.ApiServer.AllowedOrigins, ";")
	r.Use(func(c *gin.Context) {
		cors.New(
			cors.Config{
				AllowOrigins: corsOrigins,
				AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
				AllowHeaders: []string{
					"Origin", "Host", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Accept",
					"X-CSRF-Token", "Authorization", "X-Requested-With", "Idempotency-Key",
				},
				AllowCredentials: true,
			},
		)(c)
	})
}

func NewHttpServer(
	appConfig *config.AppConfig,
	logger *logger.Logger,
	flowCtrl flow.IController,
	quoteSvc quote.IQuote,
	custodyAPI custody.ICustodyAPI,
	metrics *monitoring.HTTPMetrics,
	registry *prometheus.Registry,
) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		gin.Recovery(),
	)
	setupCORS(r, appConfig)
	r.Use(monitoring.HTTPMetricsMiddleware(metrics))

	h := handler.New(appConfig, logger, flowCtrl, quoteSvc, custodyAPI, metrics)

	// use ginSwagger middleware to serve the API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// load api
	loadV1Routes(r, h, registry, appConfig, logger)

	return r
}
