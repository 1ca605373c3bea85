package pricefeed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/coinvault/transfer-gateway/internal/model"
	"github.com/coinvault/transfer-gateway/internal/utils/config"
	"github.com/coinvault/transfer-gateway/internal/utils/logger"
)

type priceFeed struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func New(cfg *config.AppConfig, logger *logger.Logger) IPriceFeed {
	return &priceFeed{
		baseURL: cfg.PriceFeed.APIBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (p *priceFeed) GetUSDPrice(asset model.Asset) (float64, error) {
	prices, err := p.GetUSDPrices([]model.Asset{asset})
	if err != nil {
		return 0, err
	}

	price, ok := prices[asset]
	if !ok {
		return 0, errors.Errorf("price feed returned no USD price for %s", asset)
	}
	return price, nil
}

// GetUSDPrices queries /simple/price for the feed identifiers of the given
// assets. Network variants sharing one feed id (e.g. both USDT keys) are
// collapsed into a single query and fanned back out.
func (p *priceFeed) GetUSDPrices(assets []model.Asset) (map[model.Asset]float64, error) {
	if len(assets) == 0 {
		return map[model.Asset]float64{}, nil
	}

	ids := make([]string, 0, len(assets))
	seen := map[string]bool{}
	for _, a := range assets {
		id := a.PriceFeedID()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		p.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	var lastErr error
	maxRetries := 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := p.client.Get(endpoint)
		if err != nil {
			lastErr = errors.Wrap(err, "failed to request prices")
			p.logger.Error("[GetUSDPrices][client.Get]", map[string]string{
				"error":   err.Error(),
				"attempt": strconv.Itoa(attempt),
			})
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = errors.Wrap(readErr, "failed to read price response")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = errors.Errorf("unexpected status code from price feed: %d", resp.StatusCode)
			p.logger.Error("[GetUSDPrices] bad status", map[string]string{
				"statusCode": strconv.Itoa(resp.StatusCode),
				"attempt":    strconv.Itoa(attempt),
			})
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		// { "<feed id>": { "usd": <price> } }
		var decoded map[string]map[string]float64
		if err := json.Unmarshal(body, &decoded); err != nil {
			lastErr = errors.Wrap(err, "failed to parse price response")
			p.logger.Error("[GetUSDPrices][json.Unmarshal]", map[string]string{
				"error": err.Error(),
				"body":  string(body),
			})
			continue
		}

		prices := make(map[model.Asset]float64, len(assets))
		for _, a := range assets {
			if quote, ok := decoded[a.PriceFeedID()]; ok {
				prices[a] = quote["usd"]
			}
		}
		return prices, nil
	}

	return nil, lastErr
}
