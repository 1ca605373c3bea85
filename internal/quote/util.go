package quote

import (
	"strconv"
	"strings"
)

// convertFiatToAsset computes assetAmount = fiatAmount / unitPriceUSD.
// An empty, unparsable or negative fiat amount yields 0, as does a
// non-positive price, so a broken price feed can never produce a transfer
// of 0 units that still passes validation downstream.
func convertFiatToAsset(fiatAmount string, unitPriceUSD float64) float64 {
	trimmed := strings.TrimSpace(fiatAmount)
	if trimmed == "" {
		return 0
	}

	fiat, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || fiat < 0 {
		return 0
	}

	if unitPriceUSD <= 0 {
		return 0
	}

	return fiat / unitPriceUSD
}

// isSufficient reports whether the computed asset amount is covered by the
// held balance.
func isSufficient(assetAmount, heldAssetBalance float64) bool {
	return assetAmount <= heldAssetBalance
}
