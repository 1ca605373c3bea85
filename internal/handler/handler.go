package handler

import (
	quotehandler "github.com/coinvault/transfer-gateway/internal/handler/quote"
	transferhandler "github.com/coinvault/transfer-gateway/internal/handler/transfer"

	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/flow"
	"github.com/coinvault/transfer-gateway/internal/monitoring"
	"github.com/coinvault/transfer-gateway/internal/quote"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

type Handler struct {
	TransferHandler transferhandler.IHandler
	QuoteHandler    quotehandler.IHandler
}

func New(
	appConfig *config.AppConfig,
	logger *logger.Logger,
	flowCtrl flow.IController,
	quoteSvc quote.IQuote,
	custodyAPI custody.ICustodyAPI,
	metrics *monitoring.HTTPMetrics,
) *Handler {
	return &Handler{
		TransferHandler: transferhandler.New(flowCtrl, quoteSvc, metrics, appConfig, logger),
		QuoteHandler:    quotehandler.New(quoteSvc, custodyAPI, logger),
	}
}
