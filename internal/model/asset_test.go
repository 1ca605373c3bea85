package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAsset(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    Asset
		wantErr bool
	}{
		{name: "btc", key: "btc", want: AssetBTC},
		{name: "usdt on tron", key: "usdtTron", want: AssetUSDTTron},
		{name: "usdt on bnb", key: "usdtBnb", want: AssetUSDTBnb},
		{name: "unknown key", key: "doge", wantErr: true},
		{name: "empty key", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAsset(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssetSymbolNormalization(t *testing.T) {
	// network variants collapse to one display symbol
	assert.Equal(t, "USDT", AssetUSDTTron.Symbol())
	assert.Equal(t, "USDT", AssetUSDTBnb.Symbol())
	assert.Equal(t, "BTC", AssetBTC.Symbol())

	// but keep their own canonical keys
	assert.NotEqual(t, AssetUSDTTron, AssetUSDTBnb)

	// and share a price feed identifier
	assert.Equal(t, AssetUSDTTron.PriceFeedID(), AssetUSDTBnb.PriceFeedID())
}

func TestTransferStatusTerminal(t *testing.T) {
	assert.False(t, TransferStatusPending.Terminal())
	assert.False(t, TransferStatusProcessing.Terminal())
	assert.True(t, TransferStatusCompleted.Terminal())
	assert.True(t, TransferStatusFailed.Terminal())
}

func TestTransferRecordProgress(t *testing.T) {
	rec := &TransferRecord{Confirmations: []bool{true, true, false, false}}
	assert.Equal(t, 2, rec.ConfirmedCount())
	assert.Equal(t, "2/4", rec.ProgressCaption())

	rec.Confirmations = []bool{true, true, true, true}
	assert.Equal(t, "4/4", rec.ProgressCaption())
}
