package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coinvault/transfer-gateway/internal/handler"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler, registry *prometheus.Registry, appConfig *config.AppConfig, logger *logger.Logger) {
	v1 := r.Group("/api/v1")
	v1.Use(requireBearerAuth())

	transfers := v1.Group("/transfers")
	{
		transfers.POST("", h.TransferHandler.Create)
		transfers.GET("/:id", h.TransferHandler.GetReceipt)
		transfers.GET("/:id/otp", h.TransferHandler.GetOtpStatus)
		transfers.POST("/:id/verify-otp", h.TransferHandler.VerifyOTP)
		transfers.POST("/:id/resend-otp", h.TransferHandler.ResendOTP)
	}

	v1.GET("/quote", h.QuoteHandler.GetQuote)
	v1.GET("/wallet/balances", h.QuoteHandler.GetWalletBalances)

	// health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
