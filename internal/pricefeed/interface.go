package pricefeed

import "github.com/coinvault/transfer-gateway/internal/model"

// IPriceFeed fetches live USD unit prices from the third-party feed.
type IPriceFeed interface {
	// GetUSDPrice returns the current USD price for one asset.
	GetUSDPrice(asset model.Asset) (float64, error)

	// GetUSDPrices returns prices for several assets in one call.
	GetUSDPrices(assets []model.Asset) (map[model.Asset]float64, error)
}
