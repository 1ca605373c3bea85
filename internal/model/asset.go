package model

import "fmt"

// Asset is the canonical key of a supported asset as the custody backend
// names it. Network-specific variants (e.g. USDT on Tron vs BNB chain) are
// distinct keys that normalize to the same display symbol.
type Asset string

const (
	AssetBTC      Asset = "btc"
	AssetETH      Asset = "eth"
	AssetSOL      Asset = "sol"
	AssetUSDTTron Asset = "usdtTron"
	AssetUSDTBnb  Asset = "usdtBnb"
)

type assetInfo struct {
	Symbol      string
	PriceFeedID string
}

// assetTable is the single normalization point for asset keys. Lookups that
// need a symbol or a price feed identifier go through here instead of
// matching key strings at call sites.
var assetTable = map[Asset]assetInfo{
	AssetBTC:      {Symbol: "BTC", PriceFeedID: "bitcoin"},
	AssetETH:      {Symbol: "ETH", PriceFeedID: "ethereum"},
	AssetSOL:      {Symbol: "SOL", PriceFeedID: "solana"},
	AssetUSDTTron: {Symbol: "USDT", PriceFeedID: "tether"},
	AssetUSDTBnb:  {Symbol: "USDT", PriceFeedID: "tether"},
}

func ParseAsset(key string) (Asset, error) {
	a := Asset(key)
	if _, ok := assetTable[a]; !ok {
		return "", fmt.Errorf("unsupported asset key: %q", key)
	}
	return a, nil
}

func SupportedAssets() []Asset {
	return []Asset{AssetBTC, AssetETH, AssetSOL, AssetUSDTTron, AssetUSDTBnb}
}

// Symbol returns the display symbol for the asset, collapsing network
// variants to one ticker.
func (a Asset) Symbol() string {
	return assetTable[a].Symbol
}

// PriceFeedID returns the identifier the price feed uses for this asset.
func (a Asset) PriceFeedID() string {
	return assetTable[a].PriceFeedID
}

func (a Asset) Valid() bool {
	_, ok := assetTable[a]
	return ok
}
