package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertFiatToAsset(t *testing.T) {
	tests := []struct {
		name         string
		fiatAmount   string
		unitPriceUSD float64
		want         float64
	}{
		{
			name:         "success - normal case",
			fiatAmount:   "500",
			unitPriceUSD: 50000,
			want:         0.01,
		},
		{
			name:         "success - fractional fiat",
			fiatAmount:   "2.50",
			unitPriceUSD: 1,
			want:         2.5,
		},
		{
			name:         "empty amount yields zero",
			fiatAmount:   "",
			unitPriceUSD: 50000,
			want:         0,
		},
		{
			name:         "whitespace amount yields zero",
			fiatAmount:   "   ",
			unitPriceUSD: 50000,
			want:         0,
		},
		{
			name:         "unparsable amount yields zero",
			fiatAmount:   "12abc",
			unitPriceUSD: 50000,
			want:         0,
		},
		{
			name:         "negative amount yields zero",
			fiatAmount:   "-10",
			unitPriceUSD: 50000,
			want:         0,
		},
		{
			name:         "zero price yields zero",
			fiatAmount:   "500",
			unitPriceUSD: 0,
			want:         0,
		},
		{
			name:         "negative price yields zero",
			fiatAmount:   "500",
			unitPriceUSD: -1,
			want:         0,
		},
		{
			name:         "zero amount",
			fiatAmount:   "0",
			unitPriceUSD: 50000,
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertFiatToAsset(tt.fiatAmount, tt.unitPriceUSD)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestIsSufficient(t *testing.T) {
	assert.True(t, isSufficient(0.01, 0.01))
	assert.True(t, isSufficient(0.01, 0.5))
	assert.False(t, isSufficient(0.6, 0.5))
	// a zero amount is trivially covered; submission is blocked elsewhere by
	// the amount > 0 requirement
	assert.True(t, isSufficient(0, 0))
}
