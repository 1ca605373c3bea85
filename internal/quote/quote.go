package quote

import (
	"strconv"
	"sync"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/pricefeed"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

type quoteCalculator struct {
	mux *sync.Mutex

	cachedPrices map[model.Asset]float64
	custodyAPI   custody.ICustodyAPI
	priceFeed    pricefeed.IPriceFeed
	logger       *logger.Logger
}

func New(custodyAPI custody.ICustodyAPI, priceFeed pricefeed.IPriceFeed, logger *logger.Logger) IQuote {
	return &quoteCalculator{
		mux:          &sync.Mutex{},
		cachedPrices: map[model.Asset]float64{},
		custodyAPI:   custodyAPI,
		priceFeed:    priceFeed,
		logger:       logger,
	}
}

func (q *quoteCalculator) GetQuote(actx *auth.Context, asset model.Asset, fiatAmount string) (*model.Quote, error) {
	// Balance fetch failures are hard errors: without a balance there is
	// nothing to check sufficiency against.
	balances, err := q.custodyAPI.GetWalletBalances(actx)
	if err != nil {
		q.logger.Error("[GetQuote][GetWalletBalances]", map[string]string{
			"error": err.Error(),
			"asset": string(asset),
		})
		return nil, err
	}
	held := balances[asset]

	// A price fetch failure degrades to price 0: the asset amount becomes 0
	// and submission stays blocked, rather than silently quoting a transfer
	// of 0 units.
	price, err := q.priceFeed.GetUSDPrice(asset)
	if err != nil {
		q.logger.Error("[GetQuote][GetUSDPrice]", map[string]string{
			"error": err.Error(),
			"asset": string(asset),
		})
		price = 0
	}
	q.updateCachedPrice(asset, price)

	assetAmount := convertFiatToAsset(fiatAmount, price)

	fiat := 0.0
	if assetAmount > 0 {
		fiat, _ = strconv.ParseFloat(fiatAmount, 64)
	}

	return &model.Quote{
		Asset:            asset,
		UnitPriceUSD:     price,
		HeldAssetBalance: held,
		HeldUSDValue:     held * price,
		FiatAmount:       fiat,
		AssetAmount:      assetAmount,
		Sufficient:       isSufficient(assetAmount, held),
	}, nil
}

// RefreshPrices is run on a schedule so the cached prices stay warm between
// user-triggered quotes.
func (q *quoteCalculator) RefreshPrices() {
	prices, err := q.priceFeed.GetUSDPrices(model.SupportedAssets())
	if err != nil {
		q.logger.Error("[RefreshPrices][GetUSDPrices]", map[string]string{
			"error": err.Error(),
		})
		return
	}

	q.mux.Lock()
	defer q.mux.Unlock()
	for asset, price := range prices {
		q.cachedPrices[asset] = price
	}
}

func (q *quoteCalculator) CachedUSDPrice(asset model.Asset) float64 {
	q.mux.Lock()
	defer q.mux.Unlock()
	return q.cachedPrices[asset]
}

func (q *quoteCalculator) updateCachedPrice(asset model.Asset, price float64) {
	if price <= 0 {
		return
	}
	q.mux.Lock()
	defer q.mux.Unlock()
	q.cachedPrices[asset] = price
}
