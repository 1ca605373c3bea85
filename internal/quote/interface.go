package quote

import (
	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/model"
)

type IQuote interface {
	// GetQuote converts a user-entered fiat amount into an asset quantity at
	// the live unit price and checks it against the caller's held balance.
	// A failed price fetch is treated as price 0, which forces the asset
	// amount to 0 and an insufficient quote.
	GetQuote(actx *auth.Context, asset model.Asset, fiatAmount string) (*model.Quote, error)

	// RefreshPrices re-fetches cached prices for all supported assets.
	RefreshPrices()

	// CachedUSDPrice returns the last known price for an asset, 0 if none.
	CachedUSDPrice(asset model.Asset) float64
}
