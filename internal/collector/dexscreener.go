package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"NexSentinel/internal/model"
)

// DexscreenerFetcher implements Fetcher using the public Dexscreener API.
type DexscreenerFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewDexscreenerFetcher creates a new fetcher with optional proxy support.
func NewDexscreenerFetcher(baseURL, proxyURL string) *DexscreenerFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DexscreenerFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *DexscreenerFetcher) Name() string { return "dexscreener" }

// dexPair is the subset of a Dexscreener pair object we use.
type dexPair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Symbol string `json:"symbol"`
	} `json:"baseToken"`
	QuoteToken struct {
		Symbol string `json:"symbol"`
	} `json:"quoteToken"`
	PriceUSD    string `json:"priceUsd"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

// FetchPair returns the first pair listed for the token on the given chain.
func (f *DexscreenerFetcher) FetchPair(ctx context.Context, chainID, tokenAddress string) (*model.TokenPair, error) {
	endpoint := fmt.Sprintf("%s/tokens/v1/%s/%s", f.BaseURL, url.PathEscape(chainID), url.PathEscape(tokenAddress))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dexscreener fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dexscreener read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dexscreener: status %d, body: %s", resp.StatusCode, string(body))
	}

	var pairs []dexPair
	if err := json.Unmarshal(body, &pairs); err != nil {
		return nil, fmt.Errorf("dexscreener decode: %w", err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("dexscreener: no pair data for %s on %s", tokenAddress, chainID)
	}
	return pairs[0].toModel()
}

func (p *dexPair) toModel() (*model.TokenPair, error) {
	if p.PriceUSD == "" {
		return nil, fmt.Errorf("dexscreener: pair %s has no USD price", p.PairAddress)
	}
	price, err := decimal.NewFromString(p.PriceUSD)
	if err != nil {
		return nil, fmt.Errorf("dexscreener: parse priceUsd %q: %w", p.PriceUSD, err)
	}
	return &model.TokenPair{
		ChainID:      p.ChainID,
		PairAddress:  p.PairAddress,
		DexID:        p.DexID,
		BaseSymbol:   p.BaseToken.Symbol,
		QuoteSymbol:  p.QuoteToken.Symbol,
		PriceUSD:     price.InexactFloat64(),
		Change24h:    p.PriceChange.H24,
		VolumeH24:    p.Volume.H24,
		LiquidityUSD: p.Liquidity.USD,
		FetchedAt:    time.Now(),
	}, nil
}
