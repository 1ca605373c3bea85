package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/flow"
	"github.com/coinvault/transfer-gateway/internal/monitoring"
	"github.com/coinvault/transfer-gateway/internal/pricefeed"
	"github.com/coinvault/transfer-gateway/internal/quote"
	"github.com/coinvault/transfer-gateway/internal/store"
	pgstore "github.com/coinvault/transfer-gateway/internal/store/postgres"
	"github.com/coinvault/transfer-gateway/internal/transport/http"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	db := pgstore.New(appConfig, logger)
	s := store.New()

	custodyAPI := custody.New(appConfig, logger)
	priceFeed := pricefeed.New(appConfig, logger)
	quoteSvc := quote.New(custodyAPI, priceFeed, logger)
	flowCtrl := flow.New(custodyAPI, s, db, appConfig, logger)
	defer flowCtrl.Shutdown()

	metrics := monitoring.NewHTTPMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics.MustRegister(registry)

	c := cron.New()

	// keep the quote cache warm so a price-feed hiccup degrades to the last
	// known price instead of zero
	c.AddFunc("@every 2m", func() {
		quoteSvc.RefreshPrices()
	})

	// terminal receipts are frozen; drop snapshots past the retention window
	c.AddFunc("@every 1h", func() {
		cutoff := time.Now().Add(-appConfig.Flow.SnapshotRetention)
		deleted, err := s.ReceiptSnapshot.DeleteTerminalBefore(db, cutoff)
		if err != nil {
			logger.Error("[cron][DeleteTerminalBefore]", map[string]string{
				"error": err.Error(),
			})
			return
		}
		if deleted > 0 {
			logger.Info("[cron] pruned receipt snapshots", map[string]string{
				"deleted": strconv.FormatInt(deleted, 10),
			})
		}
	})

	c.Start()
	defer c.Stop()

	quoteSvc.RefreshPrices()

	httpServer := http.NewHttpServer(appConfig, logger, flowCtrl, quoteSvc, custodyAPI, metrics, registry)

	httpServer.Run(":" + appConfig.ApiServer.Port)
}
