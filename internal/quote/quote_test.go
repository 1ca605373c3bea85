package quote

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinvault/transfer-gateway/internal/auth"
	"github.com/coinvault/transfer-gateway/internal/custody"
	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/types/environments"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

type fakeCustody struct {
	custody.ICustodyAPI
	balances    map[model.Asset]float64
	balancesErr error
}

func (f *fakeCustody) GetWalletBalances(_ *auth.Context) (map[model.Asset]float64, error) {
	return f.balances, f.balancesErr
}

type fakePriceFeed struct {
	prices map[model.Asset]float64
	err    error
}

func (f *fakePriceFeed) GetUSDPrice(asset model.Asset) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.prices[asset], nil
}

func (f *fakePriceFeed) GetUSDPrices(assets []model.Asset) (map[model.Asset]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

func TestGetQuote(t *testing.T) {
	actx := auth.NewContext("tok")
	log := logger.New(environments.Test)

	t.Run("sufficient balance", func(t *testing.T) {
		q := New(
			&fakeCustody{balances: map[model.Asset]float64{model.AssetBTC: 0.5}},
			&fakePriceFeed{prices: map[model.Asset]float64{model.AssetBTC: 50000}},
			log,
		)

		quote, err := q.GetQuote(actx, model.AssetBTC, "500")

		require.NoError(t, err)
		assert.InDelta(t, 0.01, quote.AssetAmount, 1e-12)
		assert.Equal(t, float64(50000), quote.UnitPriceUSD)
		assert.Equal(t, 0.5, quote.HeldAssetBalance)
		assert.Equal(t, float64(25000), quote.HeldUSDValue)
		assert.True(t, quote.Sufficient)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		q := New(
			&fakeCustody{balances: map[model.Asset]float64{model.AssetBTC: 0.005}},
			&fakePriceFeed{prices: map[model.Asset]float64{model.AssetBTC: 50000}},
			log,
		)

		quote, err := q.GetQuote(actx, model.AssetBTC, "500")

		require.NoError(t, err)
		assert.InDelta(t, 0.01, quote.AssetAmount, 1e-12)
		assert.False(t, quote.Sufficient)
	})

	t.Run("price fetch failure degrades to zero amount", func(t *testing.T) {
		q := New(
			&fakeCustody{balances: map[model.Asset]float64{model.AssetBTC: 0.5}},
			&fakePriceFeed{err: errors.New("feed unreachable")},
			log,
		)

		quote, err := q.GetQuote(actx, model.AssetBTC, "500")

		require.NoError(t, err)
		assert.Equal(t, float64(0), quote.UnitPriceUSD)
		assert.Equal(t, float64(0), quote.AssetAmount)
		assert.Equal(t, float64(0), quote.FiatAmount)
	})

	t.Run("balance fetch failure is a hard error", func(t *testing.T) {
		q := New(
			&fakeCustody{balancesErr: errors.New("custody down")},
			&fakePriceFeed{prices: map[model.Asset]float64{model.AssetBTC: 50000}},
			log,
		)

		_, err := q.GetQuote(actx, model.AssetBTC, "500")

		assert.Error(t, err)
	})
}

func TestRefreshPrices(t *testing.T) {
	log := logger.New(environments.Test)
	q := New(
		&fakeCustody{},
		&fakePriceFeed{prices: map[model.Asset]float64{
			model.AssetBTC: 51000,
			model.AssetETH: 3100,
		}},
		log,
	)

	assert.Equal(t, float64(0), q.CachedUSDPrice(model.AssetBTC))

	q.RefreshPrices()

	assert.Equal(t, float64(51000), q.CachedUSDPrice(model.AssetBTC))
	assert.Equal(t, float64(3100), q.CachedUSDPrice(model.AssetETH))
}
