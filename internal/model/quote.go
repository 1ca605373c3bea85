package model

// Quote is an ephemeral conversion between a fiat amount and an asset
// quantity at a live unit price. It is recomputed whenever the selected
// asset or the entered amount changes and is never persisted.
type Quote struct {
	Asset            Asset   `json:"asset"`
	UnitPriceUSD     float64 `json:"unit_price_usd"`
	HeldAssetBalance float64 `json:"held_asset_balance"`
	HeldUSDValue     float64 `json:"held_usd_value"`
	FiatAmount       float64 `json:"fiat_amount"`
	AssetAmount      float64 `json:"asset_amount"`
	Sufficient       bool    `json:"sufficient"`
}
