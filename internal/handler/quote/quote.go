package quote

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/quote"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
	"github.com/coinvault/transfer-gateway/internal/view"
)

type handler struct {
	quoteSvc   quote.IQuote
	custodyAPI custody.ICustodyAPI
	logger     *logger.Logger
}

func New(quoteSvc quote.IQuote, custodyAPI custody.ICustodyAPI, logger *logger.Logger) IHandler {
	return &handler{
		quoteSvc:   quoteSvc,
		custodyAPI: custodyAPI,
		logger:     logger,
	}
}

// BalanceEntry is one held asset with its cached USD valuation.
type BalanceEntry struct {
	Asset    model.Asset `json:"asset"`
	Symbol   string      `json:"symbol"`
	Amount   float64     `json:"amount"`
	USDValue float64     `json:"usd_value"`
}

// GetQuote godoc
// @Summary Quote a fiat amount against an asset
// @Description Convert the entered fiat amount at the live unit price and check it against the held balance
// @id getQuote
// @Tags Quote
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param asset query string true "asset key"
// @Param fiat_amount query string true "fiat amount as entered"
// @Success 200 {object} model.Quote
// @Failure 400 {object} view.ErrorResponse
// @Failure 401 {object} view.ErrorResponse
// @Router /quote [get]
func (h *handler) GetQuote(c *gin.Context) {
	asset, err := model.ParseAsset(c.Query("asset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, ""))
		return
	}

	q, err := h.quoteSvc.GetQuote(authContext(c), asset, c.Query("fiat_amount"))
	if err != nil {
		h.logger.Error("[GetQuote]", map[string]string{
			"asset": string(asset),
			"error": err.Error(),
		})
		h.respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(q, nil, nil, ""))
}

// GetWalletBalances godoc
// @Summary List held balances
// @Description Held amount per asset, valued at the cached unit price
// @id getWalletBalances
// @Tags Quote
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} []BalanceEntry
// @Failure 401 {object} view.ErrorResponse
// @Router /wallet/balances [get]
func (h *handler) GetWalletBalances(c *gin.Context) {
	balances, err := h.custodyAPI.GetWalletBalances(authContext(c))
	if err != nil {
		h.logger.Error("[GetWalletBalances]", map[string]string{
			"error": err.Error(),
		})
		h.respondUpstreamError(c, err)
		return
	}

	entries := make([]BalanceEntry, 0, len(balances))
	for _, asset := range model.SupportedAssets() {
		amount, ok := balances[asset]
		if !ok {
			continue
		}
		entries = append(entries, BalanceEntry{
			Asset:    asset,
			Symbol:   asset.Symbol(),
			Amount:   amount,
			USDValue: amount * h.quoteSvc.CachedUSDPrice(asset),
		})
	}

	c.JSON(http.StatusOK, view.CreateResponse(entries, nil, nil, ""))
}

func (h *handler) respondUpstreamError(c *gin.Context, err error) {
	var apiErr *custody.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, view.CreateResponse[any](nil, errors.New(apiErr.Message), nil, ""))
		return
	}
	if errors.Is(err, auth.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, view.CreateResponse[any](nil, err, nil, ""))
		return
	}
	c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, nil, ""))
}

func authContext(c *gin.Context) *auth.Context {
	if v, ok := c.Get(auth.GinContextKey); ok {
		if actx, ok := v.(*auth.Context); ok {
			return actx
		}
	}
	return nil
}
